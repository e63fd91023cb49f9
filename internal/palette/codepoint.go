package palette

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

// StickerDir is the directory, relative to the asset root, holding the
// sticker files.
const StickerDir = "emojis_svg"

var assetPattern = regexp.MustCompile(`(?i)emoji_u([0-9a-f_]+)\.(svg|png)$`)

// ignoredCodepoints are joiners, variation selectors and skin tone
// modifiers dropped when reducing a sequence to its base emoji.
var ignoredCodepoints = map[string]bool{
	"fe0f": true, "200d": true,
	"1f3fb": true, "1f3fc": true, "1f3fd": true, "1f3fe": true, "1f3ff": true,
}

// Codepoints returns the hex codepoints encoded in an asset file name such as
// emoji_u1f469_200d_1f4bb.svg.
func Codepoints(asset string) ([]string, bool) {
	m := assetPattern.FindStringSubmatch(asset)
	if m == nil {
		return nil, false
	}
	return strings.Split(strings.ToLower(m[1]), "_"), true
}

// SingleCodepoint reports whether asset names a single-codepoint emoji.
func SingleCodepoint(asset string) bool {
	cps, ok := Codepoints(asset)
	return ok && len(cps) == 1
}

// Char returns the emoji character an asset file name encodes.
func Char(asset string) string {
	cps, ok := Codepoints(asset)
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, cp := range cps {
		v, err := strconv.ParseUint(cp, 16, 32)
		if err != nil {
			return ""
		}
		sb.WriteRune(rune(v))
	}
	return sb.String()
}

// CleanSlug splits a codepoint slug like 1f44d_1f3fb and drops ignored
// codepoints.
func CleanSlug(slug string) []string {
	var out []string
	for _, cp := range strings.Split(strings.ToLower(strings.TrimSpace(slug)), "_") {
		if cp == "" || ignoredCodepoints[cp] {
			continue
		}
		out = append(out, cp)
	}
	return out
}

// AssetPath returns the sticker path for a single codepoint.
func AssetPath(cp string) string {
	return path.Join(StickerDir, "emoji_u"+strings.ToLower(cp)+".svg")
}
