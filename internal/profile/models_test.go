package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthguardian/healthguardian/internal/profile"
)

func TestUserProfile_Sanitized(t *testing.T) {
	p := profile.UserProfile{
		Age:        -5,
		Gender:     "  ",
		Allergies:  []string{"Pollen", "", "  ", "Dust", "Pollen"},
		Conditions: []string{" Asthma "},
	}

	got := p.Sanitized()

	assert.Equal(t, 0, got.Age)
	assert.Equal(t, "unknown", got.Gender)
	assert.Equal(t, []string{"Pollen", "Dust", "Pollen"}, got.Allergies)
	assert.Equal(t, []string{"Asthma"}, got.Conditions)
}

func TestUserProfile_Sanitized_CustomLocation(t *testing.T) {
	t.Run("trims location fields", func(t *testing.T) {
		p := profile.UserProfile{
			UseCustomLocation: true,
			CustomLocation: &profile.CustomLocation{
				City:    " Amsterdam ",
				State:   " Noord-Holland ",
				Country: " Netherlands ",
			},
		}

		got := p.Sanitized()
		assert.Equal(t, "Amsterdam", got.CustomLocation.City)
		assert.Equal(t, "Noord-Holland", got.CustomLocation.State)
		assert.Equal(t, "Netherlands", got.CustomLocation.Country)
	})

	t.Run("drops location when not requested", func(t *testing.T) {
		p := profile.UserProfile{
			UseCustomLocation: false,
			CustomLocation:    &profile.CustomLocation{City: "Amsterdam"},
		}

		assert.Nil(t, p.Sanitized().CustomLocation)
	})
}

func TestUserProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       profile.UserProfile
		wantErr error
	}{
		{
			name:    "ip-based profile needs no location",
			p:       profile.UserProfile{Age: 30},
			wantErr: nil,
		},
		{
			name: "custom location without city",
			p: profile.UserProfile{
				UseCustomLocation: true,
				CustomLocation:    &profile.CustomLocation{Country: "Netherlands"},
			},
			wantErr: profile.ErrMissingCity,
		},
		{
			name: "custom location without struct",
			p: profile.UserProfile{
				UseCustomLocation: true,
			},
			wantErr: profile.ErrMissingCity,
		},
		{
			name: "custom location without country",
			p: profile.UserProfile{
				UseCustomLocation: true,
				CustomLocation:    &profile.CustomLocation{City: "Amsterdam"},
			},
			wantErr: profile.ErrMissingCountry,
		},
		{
			name: "complete custom location",
			p: profile.UserProfile{
				UseCustomLocation: true,
				CustomLocation:    &profile.CustomLocation{City: "Amsterdam", Country: "Netherlands"},
			},
			wantErr: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
