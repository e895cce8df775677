package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestTechnologySetVisibility(t *testing.T) {
	tests := []struct {
		name      string
		start     Technology
		level     *int
		show      *bool
		wantLevel int
		wantShow  bool
	}{
		{name: "hide keeps level zero", start: Technology{Level: 4, ShowInAbout: true}, show: boolPtr(false), wantLevel: 0, wantShow: false},
		{name: "show hidden restores level one", start: Technology{Level: 0}, show: boolPtr(true), wantLevel: 1, wantShow: true},
		{name: "show visible keeps level", start: Technology{Level: 3, ShowInAbout: true}, show: boolPtr(true), wantLevel: 3, wantShow: true},
		{name: "level zero hides", start: Technology{Level: 2, ShowInAbout: true}, level: intPtr(0), wantLevel: 0, wantShow: false},
		{name: "level raises visibility", start: Technology{Level: 0}, level: intPtr(5), wantLevel: 5, wantShow: true},
		{name: "level wins over conflicting flag", start: Technology{Level: 0}, level: intPtr(2), show: boolPtr(false), wantLevel: 2, wantShow: true},
		{name: "level above max is clamped", start: Technology{}, level: intPtr(9), wantLevel: MaxLevel, wantShow: true},
		{name: "negative level is clamped", start: Technology{Level: 3}, level: intPtr(-1), wantLevel: 0, wantShow: false},
		{name: "no change repairs drift", start: Technology{Level: 2, ShowInAbout: false}, wantLevel: 2, wantShow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tech := tt.start
			tech.SetVisibility(tt.level, tt.show)
			assert.Equal(t, tt.wantLevel, tech.Level)
			assert.Equal(t, tt.wantShow, tech.ShowInAbout)
			assert.Equal(t, tech.Level > 0, tech.ShowInAbout)
		})
	}
}
