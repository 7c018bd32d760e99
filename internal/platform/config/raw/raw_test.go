package raw

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("RAW_NAME", " socialnorm ")
	c := New().Prefix("RAW_")

	if got := c.Get("NAME", "x"); got != "socialnorm" {
		t.Fatalf("Get = %q", got)
	}
	if got := c.Get("MISSING", "def"); got != "def" {
		t.Fatalf("Get default = %q", got)
	}
	if _, ok := c.Lookup("MISSING"); ok {
		t.Fatalf("Lookup should miss")
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("RB_")
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"TRUE", false, true},
		{"yes", false, true},
		{"on", false, true},
		{"0", true, false},
		{"nope", true, false},
		{"", true, true},
	}
	for _, tc := range cases {
		t.Setenv("RB_FLAG", tc.val)
		if got := c.GetBool("FLAG", tc.def); got != tc.want {
			t.Fatalf("GetBool(%q, %v) = %v", tc.val, tc.def, got)
		}
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("RI_")
	cases := []struct {
		val  string
		want int
	}{
		{"", 7},
		{"12", 12},
		{" 3 ", 3},
		{"-1", 7},
		{"1e3", 7},
		{"abc", 7},
	}
	for _, tc := range cases {
		t.Setenv("RI_N", tc.val)
		if got := c.GetInt("N", 7); got != tc.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tc.val, got, tc.want)
		}
	}
}
