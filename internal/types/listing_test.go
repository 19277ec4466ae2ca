//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		listing ListingRecord
		wantErr bool
	}{
		{
			name:    "valid listing",
			listing: ListingRecord{Title: "Go Developer", Company: "Acme", Source: SourceIndeed, URL: "https://www.indeed.com/viewjob?jk=1"},
		},
		{
			name:    "missing title",
			listing: ListingRecord{Company: "Acme", Source: SourceIndeed, URL: "https://www.indeed.com/viewjob?jk=1"},
			wantErr: true,
		},
		{
			name:    "missing source",
			listing: ListingRecord{Title: "Go Developer", URL: "https://www.indeed.com/viewjob?jk=1"},
			wantErr: true,
		},
		{
			name:    "missing url",
			listing: ListingRecord{Title: "Go Developer", Source: SourceIndeed},
			wantErr: true,
		},
		{
			name:    "relative url",
			listing: ListingRecord{Title: "Go Developer", Source: SourceIndeed, URL: "/viewjob?jk=1"},
			wantErr: true,
		},
		{
			name:    "non-http scheme",
			listing: ListingRecord{Title: "Go Developer", Source: SourceIndeed, URL: "mailto:jobs@acme.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.listing.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
