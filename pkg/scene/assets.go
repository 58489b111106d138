package scene

import (
	"github.com/pkg/errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// earthMaterial wraps the texture image around a Lambertian. Without an
// image the sphere gets turbulent noise sized to its radius instead.
func earthMaterial(opts Options, radius float64) (material.Material, error) {
	if opts.TextureFile == "" {
		return material.NewTexturedLambertian(material.NewNoise(4/radius, opts.Seed)), nil
	}

	img, err := loaders.LoadImage(opts.TextureFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load earth texture")
	}
	texture, err := img.Texture()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", opts.TextureFile)
	}
	return material.NewTexturedLambertian(texture), nil
}

// loadMesh reads opts.MeshFile and builds its triangles, or returns nil if
// no mesh was requested
func loadMesh(opts Options, transform geometry.MeshTransform, mat material.Material) ([]geometry.Primitive, error) {
	if opts.MeshFile == "" {
		return nil, nil
	}

	mesh, err := loaders.LoadOBJ(opts.MeshFile)
	if err != nil {
		return nil, err
	}
	triangles, err := mesh.Triangles(transform, mat)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build mesh %s", opts.MeshFile)
	}
	logger.Debugf("mesh %s: %d triangles", opts.MeshFile, len(triangles))
	return triangles, nil
}

// group wraps primitives in their own BVH so the top-level hierarchy
// treats them as one object
func group(primitives []geometry.Primitive) (geometry.Primitive, error) {
	if len(primitives) == 1 {
		return primitives[0], nil
	}
	node, err := geometry.NewBVHNode(primitives)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// goldMetal is the polished metal used for meshes
func goldMetal() material.Material {
	return material.NewMetal(core.NewVec3(.53, .35, .05), .07)
}
