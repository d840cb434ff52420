package timezone

import (
	"testing"

	"github.com/geonet-geomatica/Repositorio/internal/types"
)

func TestService_Location(t *testing.T) {
	svc, err := NewService()
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	tests := []struct {
		name   string
		coords types.Coords
		want   string
	}{
		{
			name:   "Mendoza city",
			coords: types.NewCoords(-68.8458, -32.8895),
			want:   "America/Argentina/Mendoza",
		},
		{
			name:   "San Rafael",
			coords: types.NewCoords(-68.3301, -34.6177),
			want:   "America/Argentina/Mendoza",
		},
		{
			name:   "Buenos Aires",
			coords: types.NewCoords(-58.3816, -34.6037),
			want:   "America/Argentina/Buenos_Aires",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Location(tt.coords)
			if err != nil {
				t.Fatalf("Location() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Location() = %v, want %v", got, tt.want)
			}

			again, err := svc.Location(tt.coords)
			if err != nil {
				t.Fatalf("Location() second call error = %v", err)
			}
			if again != got {
				t.Errorf("Location() should reuse the loaded *time.Location")
			}
		})
	}
}
