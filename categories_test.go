package docnorm

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		listing string
		want    []string
	}{
		{
			name: "unique categories in first-seen order",
			listing: "Filename: a.md | Categories: Networking, Storage\n" +
				"Filename: b.md | Categories: Storage, Kernel Tuning\n",
			want: []string{"Networking", "Storage", "Kernel Tuning"},
		},
		{
			name:    "single document",
			listing: "Filename: x.md | Categories: Firmware\n",
			want:    []string{"Firmware"},
		},
		{
			name:    "no category lines",
			listing: "just some text\n",
			want:    nil,
		},
		{
			name:    "empty listing",
			listing: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractCategories(tt.listing)
			if err != nil {
				t.Fatalf("ExtractCategories() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractCategories() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractCategories_InvalidUTF8(t *testing.T) {
	t.Parallel()

	if _, err := ExtractCategories("\xff"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ExtractCategories(invalid UTF-8) error = %v, want ErrInvalidInput", err)
	}
}
