package browser

import "testing"

func TestOpenWithRejectsNonHTTP(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://example.com/a?b=c", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"https://", true},
		{"", true},
	}

	for _, tt := range tests {
		var opened []string
		o := OpenerFunc(func(u string) error {
			opened = append(opened, u)
			return nil
		})

		err := OpenWith(o, tt.url)
		if tt.wantErr {
			if err == nil {
				t.Errorf("OpenWith(%q): expected error, got nil", tt.url)
			}
			if len(opened) != 0 {
				t.Errorf("OpenWith(%q): opener called for rejected URL", tt.url)
			}
			continue
		}
		if err != nil {
			t.Errorf("OpenWith(%q): unexpected error %v", tt.url, err)
		}
		if len(opened) != 1 || opened[0] != tt.url {
			t.Errorf("OpenWith(%q): opener got %v", tt.url, opened)
		}
	}
}
