package intent

import (
	"regexp"
	"slices"
	"strings"
)

// vocab maps colloquial, English and diacritic-stripped spellings to one display name.
type vocab struct {
	byAlias map[string]string // folded alias -> canonical name
	bare    []string          // aliases safe to match without a trigger word
	guarded []string          // aliases that only count after a trigger word
}

type entry struct {
	name      string
	guardName bool // the display name itself is a common word
	aliases   []string
	guarded   []string
}

func newVocab(entries []entry) vocab {
	v := vocab{byAlias: make(map[string]string)}
	for _, e := range entries {
		v.byAlias[Fold(e.name)] = e.name
		if e.guardName {
			v.guarded = append(v.guarded, e.name)
		} else {
			v.bare = append(v.bare, e.name)
		}
		for _, a := range e.aliases {
			v.byAlias[Fold(a)] = e.name
			v.bare = append(v.bare, a)
		}
		for _, a := range e.guarded {
			v.byAlias[Fold(a)] = e.name
			v.guarded = append(v.guarded, a)
		}
	}
	return v
}

func (v vocab) canonical(s string) (string, bool) {
	name, ok := v.byAlias[Fold(s)]
	return name, ok
}

// minFoldedRunes keeps short folded forms out of patterns: "hài" folds to "hai", which is an everyday word.
const minFoldedRunes = 5

// alternation builds a longest-first regexp alternation over aliases and their folded forms.
func alternation(aliases []string) string {
	seen := make(map[string]bool)
	var all []string
	for _, a := range aliases {
		forms := []string{strings.ToLower(a)}
		if f := Fold(a); len([]rune(f)) >= minFoldedRunes {
			forms = append(forms, f)
		}
		for _, form := range forms {
			if !seen[form] {
				seen[form] = true
				all = append(all, form)
			}
		}
	}
	slices.SortFunc(all, func(a, b string) int {
		if d := len([]rune(b)) - len([]rune(a)); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	quoted := make([]string, len(all))
	for i, a := range all {
		quoted[i] = regexp.QuoteMeta(a)
	}
	return strings.Join(quoted, "|")
}

var genres = newVocab([]entry{
	{name: "Hành Động", aliases: []string{"action", "hanh dong"}},
	{name: "Tình Cảm", aliases: []string{"romance", "lãng mạn", "tinh cam"}},
	{name: "Hài Hước", aliases: []string{"comedy", "hài", "hai huoc"}},
	{name: "Cổ Trang", aliases: []string{"costume", "kiếm hiệp", "co trang"}},
	{name: "Tâm Lý", aliases: []string{"drama tâm lý", "psychological"}},
	{name: "Hình Sự", aliases: []string{"crime", "tội phạm"}},
	{name: "Chiến Tranh", aliases: []string{"war"}},
	{name: "Thể Thao", aliases: []string{"sport", "sports"}},
	{name: "Võ Thuật", aliases: []string{"martial arts", "kungfu", "kung fu"}},
	{name: "Viễn Tưởng", aliases: []string{"sci-fi", "scifi", "science fiction", "khoa học viễn tưởng"}},
	{name: "Phiêu Lưu", aliases: []string{"adventure"}},
	{name: "Khoa Học", aliases: []string{"science"}},
	{name: "Kinh Dị", aliases: []string{"horror", "phim ma"}},
	{name: "Âm Nhạc", aliases: []string{"music", "musical"}},
	{name: "Thần Thoại", aliases: []string{"fantasy", "mythology"}},
	{name: "Tài Liệu", aliases: []string{"documentary"}},
	{name: "Gia Đình", aliases: []string{"family"}},
	{name: "Chính Kịch", aliases: []string{"drama"}},
	{name: "Bí Ẩn", aliases: []string{"mystery", "trinh thám"}},
	{name: "Học Đường", aliases: []string{"school", "thanh xuân vườn trường"}},
	{name: "Kinh Điển", aliases: []string{"classic"}},
})

var countries = newVocab([]entry{
	{name: "Trung Quốc", aliases: []string{"china", "chinese", "hoa ngữ"}, guarded: []string{"tq", "trung"}},
	{name: "Hàn Quốc", aliases: []string{"korea", "korean", "hàn", "xứ kim chi"}},
	{name: "Nhật Bản", aliases: []string{"japan", "japanese"}, guarded: []string{"nhật"}},
	{name: "Thái Lan", aliases: []string{"thailand"}, guarded: []string{"thái", "thai"}},
	{name: "Âu Mỹ", aliases: []string{"usa", "america", "american", "hollywood", "phương tây"}, guarded: []string{"mỹ", "us", "âu"}},
	{name: "Anh", guardName: true, aliases: []string{"england", "british", "anh quốc"}, guarded: []string{"uk"}},
	{name: "Pháp", aliases: []string{"france", "french"}},
	{name: "Ấn Độ", aliases: []string{"india", "indian", "bollywood"}},
	{name: "Đài Loan", aliases: []string{"taiwan"}},
	{name: "Hồng Kông", aliases: []string{"hong kong", "hongkong", "hương cảng"}, guarded: []string{"hk"}},
	{name: "Việt Nam", aliases: []string{"vietnam"}, guarded: []string{"việt", "vn"}},
	{name: "Canada"},
	{name: "Đức", guardName: true, aliases: []string{"germany", "german"}},
	{name: "Tây Ban Nha", aliases: []string{"spain", "spanish"}},
	{name: "Nga", guardName: true, aliases: []string{"russia", "russian"}},
	{name: "Úc", aliases: []string{"australia"}},
})

// CanonicalGenre maps a genre spelling to its display name.
func CanonicalGenre(s string) (string, bool) { return genres.canonical(s) }

// CanonicalCountry maps a country spelling to its display name.
func CanonicalCountry(s string) (string, bool) { return countries.canonical(s) }

// GenreSlug resolves a caller-supplied category value (slug, name or alias) to a category slug.
func GenreSlug(s string) string {
	if name, ok := CanonicalGenre(s); ok {
		return Slugify(name)
	}
	return Slugify(s)
}

// CountrySlug resolves a caller-supplied country value (slug, name or alias) to a country slug.
func CountrySlug(s string) string {
	if name, ok := CanonicalCountry(s); ok {
		return Slugify(name)
	}
	return Slugify(s)
}
