package importer

import (
	"regexp"
	"sort"
	"strings"
)

// ImageTier ranks a candidate by what its URL pattern says about the image.
type ImageTier int

const (
	TierBoxArt ImageTier = iota
	TierFull
	TierOther
	TierThumbnail
)

// ImageCandidate is an absolute URL on the trusted CDN plus its derived tier.
type ImageCandidate struct {
	URL  string
	Tier ImageTier
}

// maxGalleryImages caps the secondary (gameplay) image list.
const maxGalleryImages = 2

// only the catalog CDN is trusted; anything else in the page is ignored
// literal parentheses stay in the match (filters:format(jpeg) path segments);
// the sanitizer percent-encodes them before anything is persisted
var imageURLPattern = regexp.MustCompile(`https://cf\.geekdo-images\.com/[^\s"'<>\\]+\.(?:jpg|jpeg|png|webp)`)

var (
	thumbnailTokens = []string{"__thumb", "__micro", "__small", "__square", "__mediacard", "_mt", "crop100", "200x", "150x"}
	boxArtTokens    = []string{"box", "cover"}
	fullTokens      = []string{"__original", "__imagepage", "__large", "full"}
)

// ExtractImageCandidates regex-scans raw HTML for trusted-CDN image URLs,
// deduplicates exact matches, classifies each by filename pattern and returns
// them ranked best-first (head = best box-art candidate). Pure function; an
// empty result is not an error.
func ExtractImageCandidates(rawHTML string) []ImageCandidate {
	matches := imageURLPattern.FindAllString(rawHTML, -1)
	seen := make(map[string]struct{}, len(matches))
	candidates := make([]ImageCandidate, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		candidates = append(candidates, ImageCandidate{URL: m, Tier: ClassifyImageURL(m)})
	}
	// stable so candidates within a tier keep document order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Tier < candidates[j].Tier
	})
	return candidates
}

// ClassifyImageURL derives a quality tier from URL-pattern heuristics alone;
// image bytes are never fetched server-side (the origin CDN rejects
// non-browser requests).
func ClassifyImageURL(u string) ImageTier {
	lower := strings.ToLower(u)
	for _, tok := range thumbnailTokens {
		if strings.Contains(lower, tok) {
			return TierThumbnail
		}
	}
	for _, tok := range boxArtTokens {
		if strings.Contains(lower, tok) {
			return TierBoxArt
		}
	}
	for _, tok := range fullTokens {
		if strings.Contains(lower, tok) {
			return TierFull
		}
	}
	return TierOther
}

// SanitizeImageURL percent-encodes the characters known to break the CDN's
// delivery layer when left literal.
func SanitizeImageURL(u string) string {
	u = strings.TrimSpace(u)
	u = strings.ReplaceAll(u, " ", "%20")
	u = strings.ReplaceAll(u, "(", "%28")
	u = strings.ReplaceAll(u, ")", "%29")
	return u
}

// FilterGalleryImages sanitizes and filters the secondary image list:
// thumbnails are dropped, box-art URLs are dropped (secondaries must be
// gameplay/component photos, not duplicates of the cover), the main image is
// excluded, duplicates collapse, and the result is capped at two entries.
func FilterGalleryImages(urls []string, mainImage string) []string {
	out := make([]string, 0, maxGalleryImages)
	seen := map[string]struct{}{}
	if mainImage != "" {
		seen[SanitizeImageURL(mainImage)] = struct{}{}
	}
	for _, u := range urls {
		u = SanitizeImageURL(u)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		switch ClassifyImageURL(u) {
		case TierThumbnail, TierBoxArt:
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
		if len(out) == maxGalleryImages {
			break
		}
	}
	return out
}

// FallbackImages re-filters the ranked candidate list when the extractor
// returned no image selection: best candidate becomes the main image, the
// rest feed the gallery filter.
func FallbackImages(candidates []ImageCandidate) (main string, gallery []string) {
	if len(candidates) == 0 {
		return "", nil
	}
	main = SanitizeImageURL(candidates[0].URL)
	rest := make([]string, 0, len(candidates)-1)
	for _, c := range candidates[1:] {
		rest = append(rest, c.URL)
	}
	return main, FilterGalleryImages(rest, main)
}
