package scene

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrUnknownScene is returned by Build for names missing from the catalog.
var ErrUnknownScene = errors.New("scene: unknown scene")

// Builder creates a scene
type Builder func(opts Options) (*Scene, error)

// SceneInfo describes a scene of the catalog
type SceneInfo struct {
	ID          string // Name accepted by Build
	DisplayName string
	Description string
	build       Builder
}

var catalog = []SceneInfo{
	{ID: "random", Description: "Small random spheres around three large ones (mesh optional)", build: NewRandomScene},
	{ID: "cornell", Description: "Cornell box with two rotated boxes (mesh optional)", build: NewCornellScene},
	{ID: "next-week", Description: "Boxes, media, textures and a ball cluster under a ceiling light", build: NewNextWeekScene},
	{ID: "fog", Description: "Rows of spheres fading into fog under an open sky", build: NewFogScene},
}

// List returns the catalog's scenes
func List() []SceneInfo {
	return lo.Map(catalog, func(info SceneInfo, _ int) SceneInfo {
		info.DisplayName = titleCase(info.ID)
		return info
	})
}

// Names returns the IDs of the catalog's scenes
func Names() []string {
	return lo.Map(catalog, func(info SceneInfo, _ int) string { return info.ID })
}

// Build creates the scene with the given ID
func Build(id string, opts Options) (*Scene, error) {
	info, ok := lo.Find(catalog, func(info SceneInfo) bool { return info.ID == id })
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScene, "%q (available: %s)", id, strings.Join(Names(), ", "))
	}

	s, err := info.build(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build scene %s", id)
	}
	return s, nil
}

// titleCase converts a scene ID like "next-week" to "Next Week"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
