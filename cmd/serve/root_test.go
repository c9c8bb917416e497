package serve

import (
	"reflect"
	"testing"

	"github.com/dgrid/dgrid/rpc/common"
)

func TestParseCaches(t *testing.T) {
	tests := []struct {
		name     string
		list     string
		expected []common.ServerCache
		wantErr  bool
	}{
		{"Single", "1=main", []common.ServerCache{{ID: 1, Name: "main"}}, false},
		{"Multiple", " 1=main, 2 = sessions ,", []common.ServerCache{{ID: 1, Name: "main"}, {ID: 2, Name: "sessions"}}, false},
		{"Negative", "-3=legacy", []common.ServerCache{{ID: -3, Name: "legacy"}}, false},
		{"Empty", "", nil, true},
		{"MissingName", "1=", nil, true},
		{"MissingSeparator", "main", nil, true},
		{"TooManySeparators", "1=a=b", nil, true},
		{"InvalidID", "one=main", nil, true},
		{"IDOverflow", "4294967296=main", nil, true},
		{"DuplicateID", "1=main,1=other", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			caches, err := ParseCaches(tc.list)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %v", tc.list, caches)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tc.list, err)
			}
			if !reflect.DeepEqual(caches, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, caches)
			}
		})
	}
}
