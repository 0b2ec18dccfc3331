package hebrew

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpanderExpand(t *testing.T) {
	exp := NewExpander(map[string]string{
		`ש"פ`:  "שבת פרשת",
		`סה"מ`: "ספר המאמרים",
		`ד"ה`:  "דיבור המתחיל",
		"עמ":   "עמוד",
	})
	require.Equal(t, 4, exp.Len())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "stored quote form",
			in:   `ש"פ משפטים`,
			want: "שבת פרשת משפטים",
		},
		{
			name: "gershayim variant",
			in:   "ש״פ משפטים",
			want: "שבת פרשת משפטים",
		},
		{
			name: "geresh variant",
			in:   "ש׳פ משפטים",
			want: "שבת פרשת משפטים",
		},
		{
			name: "no quotes in abbreviation",
			in:   "עמ קצד",
			want: "עמוד קצד",
		},
		{
			name: "multiple abbreviations",
			in:   `ד"ה באתי לגני סה"מ`,
			want: "דיבור המתחיל באתי לגני ספר המאמרים",
		},
		{
			name: "untouched text",
			in:   "באתי לגני",
			want: "באתי לגני",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exp.Expand(tt.in))
		})
	}
}

func TestExpanderLongestFirst(t *testing.T) {
	exp := NewExpander(map[string]string{
		`ד"ה`:  "דיבור המתחיל",
		`סד"ה`: "סוף דיבור המתחיל",
	})
	// The longer abbreviation must win before its suffix gets a chance.
	assert.Equal(t, "סוף דיבור המתחיל", exp.Expand(`סד"ה`))
}

func TestExpanderEmptyTable(t *testing.T) {
	exp := NewExpander(nil)
	assert.Equal(t, `ש"פ משפטים`, exp.Expand(`ש"פ משפטים`))

	exp = NewExpander(map[string]string{"": "x", "y": ""})
	assert.Equal(t, 0, exp.Len())
}
