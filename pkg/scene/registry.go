package scene

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Options carries the caller's choices into a scene factory
type Options struct {
	Width        int    // Image width, 0 keeps the scene's recommendation
	Height       int    // Image height, 0 keeps the scene's recommendation
	Seed         int64  // Seed for randomly generated content
	ModelPath    string // OBJ or PLY model for mesh scenes
	Orthographic bool   // Use an orthographic instead of a perspective camera
}

// SceneInfo describes a registered scene
type SceneInfo struct {
	Name        string
	DisplayName string
	Description string
	Width       int
	Height      int
}

type entry struct {
	info    SceneInfo
	factory func(opts Options) (*Scene, error)
}

var registry = map[string]entry{}

func register(info SceneInfo, factory func(opts Options) (*Scene, error)) {
	if info.DisplayName == "" {
		info.DisplayName = titleCase(info.Name)
	}
	registry[info.Name] = entry{info: info, factory: factory}
}

func init() {
	register(SceneInfo{
		Name:        "simple-primitives",
		Description: "Glass, diffuse and metal spheres with a mirror triangle under a sunset sky",
		Width:       800, Height: 450,
	}, NewSimplePrimitivesScene)
	register(SceneInfo{
		Name:        "rectangle-light",
		Description: "Diffuse and glass spheres lit by an overhead rectangular area light",
		Width:       800, Height: 450,
	}, NewRectangleLightScene)
	register(SceneInfo{
		Name:        "mirror-hallway",
		Description: "A green ball between two parallel mirrors",
		Width:       800, Height: 450,
	}, NewMirrorHallwayScene)
	register(SceneInfo{
		Name:        "random-spheres",
		Description: "Ten thousand random spheres under a point light, direct lighting",
		Width:       960, Height: 540,
	}, NewRandomSpheresScene)
	register(SceneInfo{
		Name:        "sphere-grid",
		Description: "A grid of glass, metal and diffuse spheres under a glowing sun",
		Width:       800, Height: 450,
	}, NewSphereGridScene)
	register(SceneInfo{
		Name:        "mesh-caustic",
		Description: "A glass model over a ground plane under an area light",
		Width:       800, Height: 450,
	}, NewMeshCausticScene)
	register(SceneInfo{
		Name:        "mesh-sky",
		Description: "A glass model seen from above against a red sky",
		Width:       600, Height: 600,
	}, NewMeshSkyScene)
	register(SceneInfo{
		Name:        "single-sphere",
		Description: "One diffuse sphere under a gradient sky",
		Width:       64, Height: 64,
	}, NewSingleSphereScene)
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := lo.Keys(registry)
	sort.Strings(names)
	return names
}

// List returns the registered scenes sorted by name
func List() []SceneInfo {
	return lo.Map(Names(), func(name string, _ int) SceneInfo {
		return registry[name].info
	})
}

// Lookup returns the description of a registered scene
func Lookup(name string) (SceneInfo, bool) {
	e, ok := registry[name]
	return e.info, ok
}

// Build creates the named scene. Zero dimensions in opts are replaced by the
// scene's recommended size before the factory runs, so cameras get the right
// aspect ratio.
func Build(name string, opts Options) (*Scene, error) {
	e, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownScene, "%q (available: %s)", name, strings.Join(Names(), ", "))
	}
	if opts.Width <= 0 {
		opts.Width = e.info.Width
	}
	if opts.Height <= 0 {
		opts.Height = e.info.Height
	}

	s, err := e.factory(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "creating scene %q", name)
	}
	s.Name = name
	s.SamplingConfig.Width = opts.Width
	s.SamplingConfig.Height = opts.Height
	return s, nil
}

// titleCase converts a hyphen or underscore separated name to title case
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
