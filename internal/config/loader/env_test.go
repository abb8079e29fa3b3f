package loader

import "testing"

func newTestEnvLoader(env ...string) *EnvLoader {
	return NewEnvLoaderWithEnviron("BOXWIN_", func() []string { return env })
}

func TestEnvLoader_Load(t *testing.T) {
	l := newTestEnvLoader(
		"BOXWIN_LOG_LEVEL=debug",
		"BOXWIN_SESSION_BOX_CAPACITY=16",
		"BOXWIN_SURFACE_TRUE_COLOR=yes",
		"BOXWIN_SCRIPT=demo.lua",
		"BOXWIN_COLORS_FOREGROUND=darkcyan",
		"HOME=/root",
		"OTHER_SESSION_BOX_CAPACITY=3",
	)

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path []string
		want any
	}{
		{[]string{"logging", "level"}, "debug"},
		{[]string{"session", "boxCapacity"}, int64(16)},
		{[]string{"surface", "trueColor"}, true},
		{[]string{"script", "path"}, "demo.lua"},
		{[]string{"colors", "foreground"}, "darkcyan"},
	}
	for _, tt := range tests {
		if v, ok := getByPath(config, tt.path...); !ok || v != tt.want {
			t.Errorf("%v = %v (%T), want %v", tt.path, v, v, tt.want)
		}
	}
	if len(config) != 5 {
		t.Errorf("unexpected sections: %v", config)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := newTestEnvLoader("BOXWIN_STYLE=block")
	l.AddMapping("BOXWIN_STYLE", "session.defaultStyle")

	config, _ := l.Load()
	if v, _ := getByPath(config, "session", "defaultStyle"); v != "block" {
		t.Errorf("session.defaultStyle = %v, want block", v)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("BOXWIN_")
	tests := []struct {
		env  string
		want string
	}{
		{"BOXWIN_SESSION_SLOT_CAPACITY", "session.slotCapacity"},
		{"BOXWIN_SURFACE_WIDTH", "surface.width"},
		{"BOXWIN_SIMPLE", "simple"},
		{"BOXWIN_", ""},
	}
	for _, tt := range tests {
		if got := l.envToPath(tt.env); got != tt.want {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"OFF", false},
		{"1", int64(1)},
		{"0", int64(0)},
		{"-7", int64(-7)},
		{"#ff0000", "#ff0000"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.in, got, got, tt.want)
		}
	}
}
