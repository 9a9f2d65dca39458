package config

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int // sign only
	}{
		{"equal", "1.2.3", "1.2.3", 0},
		{"major less", "0.9.9", "1.0.0", -1},
		{"major greater", "2.0.0", "1.9.9", 1},
		{"minor less", "1.1.9", "1.2.0", -1},
		{"point greater", "1.2.4", "1.2.3", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompareVersions(tt.a, tt.b)
			if err != nil {
				t.Fatalf("CompareVersions(%q, %q) error: %v", tt.a, tt.b, err)
			}
			if sign(got) != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareVersions_Malformed(t *testing.T) {
	bad := []string{"", "1.2", "1.2.3.4", "a.b.c", "1.-2.3", "1.2.x"}
	for _, v := range bad {
		if _, err := CompareVersions(v, "1.0.0"); err == nil {
			t.Errorf("CompareVersions(%q, ...) expected error", v)
		}
		if _, err := CompareVersions("1.0.0", v); err == nil {
			t.Errorf("CompareVersions(..., %q) expected error", v)
		}
	}
}

func TestDBTooOldTooNew(t *testing.T) {
	tooOld, err := DBTooOld("0.0.1")
	if err != nil || !tooOld {
		t.Errorf("DBTooOld(0.0.1) = %v, %v; want true, nil", tooOld, err)
	}

	tooOld, err = DBTooOld(VersionLastDBChange)
	if err != nil || tooOld {
		t.Errorf("DBTooOld(current) = %v, %v; want false, nil", tooOld, err)
	}

	tooNew, err := DBTooNew("99.0.0")
	if err != nil || !tooNew {
		t.Errorf("DBTooNew(99.0.0) = %v, %v; want true, nil", tooNew, err)
	}

	tooNew, err = DBTooNew(Version)
	if err != nil || tooNew {
		t.Errorf("DBTooNew(current) = %v, %v; want false, nil", tooNew, err)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
