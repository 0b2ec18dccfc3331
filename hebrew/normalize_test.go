package hebrew

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		level int
		want  string
	}{
		{
			name:  "empty input",
			text:  "",
			level: LevelBase,
			want:  "",
		},
		{
			name:  "strips niqqud",
			text:  "בָּאתִי לְגַנִּי",
			level: LevelBase,
			want:  "באתי לגני",
		},
		{
			name:  "strips gershayim",
			text:  "ויתן לך תשכ״ח",
			level: LevelBase,
			want:  "ויתן לך תשכח",
		},
		{
			name:  "strips ascii quotes",
			text:  `זאת חנוכה תשל"ו`,
			level: LevelBase,
			want:  "זאת חנוכה תשלו",
		},
		{
			name:  "punctuation becomes whitespace",
			text:  "שלום, עולם!",
			level: LevelBase,
			want:  "שלום עולם",
		},
		{
			name:  "collapses whitespace",
			text:  "  באתי   לגני  ",
			level: LevelBase,
			want:  "באתי לגני",
		},
		{
			name:  "level base keeps medial vav",
			text:  "יום",
			level: LevelBase,
			want:  "יום",
		},
		{
			name:  "level vav drops medial vav",
			text:  "יום",
			level: LevelVav,
			want:  "ים",
		},
		{
			name:  "level yod drops medial yod",
			text:  "מים",
			level: LevelYod,
			want:  "מם",
		},
		{
			name:  "level he drops medial he",
			text:  "אהבה",
			level: LevelHe,
			want:  "אבה",
		},
		{
			name:  "leading vav survives all levels",
			text:  "ויתן",
			level: LevelHe,
			want:  "ויתן",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.text, tt.level))
		})
	}
}

func TestNormalizeQuotes(t *testing.T) {
	assert.Equal(t, `תשכ"ח`, NormalizeQuotes("תשכ״ח"))
	assert.Equal(t, "ר'", NormalizeQuotes("ר׳"))
	assert.Equal(t, "a'b'c", NormalizeQuotes("a`b′c"))
}

func TestStripQuotes(t *testing.T) {
	assert.Equal(t, "תשיא", StripQuotes("תשי״א"))
	assert.Equal(t, "סהמ", StripQuotes(`סה"מ`))
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"באתי", "לגני"}, Words("בָּאתִי לְגַנִּי", LevelBase))
	assert.Nil(t, Words("  ", LevelBase))
	assert.Nil(t, Words("", LevelHe))
}
