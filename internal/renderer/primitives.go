package renderer

import (
	"math"
)

// NewCube builds an axis-aligned cube of edge length size centred on the
// origin, with per-face normals.
func NewCube(size float32) *Model {
	h := size * 0.5

	interleavedData := []float32{
		// front (+Z)
		-h, -h, h, 0.0, 0.0, 0.0, 0.0, 1.0,
		h, -h, h, 1.0, 0.0, 0.0, 0.0, 1.0,
		h, h, h, 1.0, 1.0, 0.0, 0.0, 1.0,
		-h, h, h, 0.0, 1.0, 0.0, 0.0, 1.0,

		// back (-Z)
		-h, -h, -h, 1.0, 0.0, 0.0, 0.0, -1.0,
		-h, h, -h, 1.0, 1.0, 0.0, 0.0, -1.0,
		h, h, -h, 0.0, 1.0, 0.0, 0.0, -1.0,
		h, -h, -h, 0.0, 0.0, 0.0, 0.0, -1.0,

		// left (-X)
		-h, -h, -h, 0.0, 0.0, -1.0, 0.0, 0.0,
		-h, -h, h, 1.0, 0.0, -1.0, 0.0, 0.0,
		-h, h, h, 1.0, 1.0, -1.0, 0.0, 0.0,
		-h, h, -h, 0.0, 1.0, -1.0, 0.0, 0.0,

		// right (+X)
		h, -h, -h, 1.0, 0.0, 1.0, 0.0, 0.0,
		h, h, -h, 1.0, 1.0, 1.0, 0.0, 0.0,
		h, h, h, 0.0, 1.0, 1.0, 0.0, 0.0,
		h, -h, h, 0.0, 0.0, 1.0, 0.0, 0.0,

		// top (+Y)
		-h, h, -h, 0.0, 1.0, 0.0, 1.0, 0.0,
		-h, h, h, 0.0, 0.0, 0.0, 1.0, 0.0,
		h, h, h, 1.0, 0.0, 0.0, 1.0, 0.0,
		h, h, -h, 1.0, 1.0, 0.0, 1.0, 0.0,

		// bottom (-Y)
		-h, -h, -h, 1.0, 1.0, 0.0, -1.0, 0.0,
		h, -h, -h, 0.0, 1.0, 0.0, -1.0, 0.0,
		h, -h, h, 0.0, 0.0, 0.0, -1.0, 0.0,
		-h, -h, h, 1.0, 0.0, 0.0, -1.0, 0.0,
	}

	indices := []int32{
		0, 1, 2, 2, 3, 0,
		4, 5, 6, 6, 7, 4,
		8, 9, 10, 10, 11, 8,
		12, 13, 14, 14, 15, 12,
		16, 17, 18, 18, 19, 16,
		20, 21, 22, 22, 23, 20,
	}

	return newMesh("Cube", interleavedData, indices)
}

// NewSphere builds a UV sphere with nlat latitude bands and nlong longitude
// segments. Counts below 3 are raised to 3.
func NewSphere(nlat, nlong int, radius float32) *Model {
	if nlat < 3 {
		nlat = 3
	}
	if nlong < 3 {
		nlong = 3
	}

	interleavedData := make([]float32, 0, (nlat+1)*(nlong+1)*vertexStride)
	indices := make([]int32, 0, nlat*nlong*6)

	for i := 0; i <= nlat; i++ {
		lat := float64(i) * math.Pi / float64(nlat)
		for j := 0; j <= nlong; j++ {
			lon := float64(j) * 2.0 * math.Pi / float64(nlong)

			nx := float32(math.Sin(lat) * math.Cos(lon))
			ny := float32(math.Cos(lat))
			nz := float32(math.Sin(lat) * math.Sin(lon))

			u := float32(j) / float32(nlong)
			v := float32(i) / float32(nlat)

			interleavedData = append(interleavedData, radius*nx, radius*ny, radius*nz, u, v, nx, ny, nz)
		}
	}

	for i := 0; i < nlat; i++ {
		for j := 0; j < nlong; j++ {
			first := int32(i*(nlong+1) + j)
			second := first + int32(nlong+1)

			indices = append(indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}

	return newMesh("Sphere", interleavedData, indices)
}

// NewPlane builds a flat x,z grid of xlen by zlen centred on the origin,
// split into nx by nz quads, facing +Y.
func NewPlane(xlen, zlen float32, nx, nz int) *Model {
	if nx < 1 {
		nx = 1
	}
	if nz < 1 {
		nz = 1
	}

	interleavedData := make([]float32, 0, (nx+1)*(nz+1)*vertexStride)
	indices := make([]int32, 0, nx*nz*6)

	for x := 0; x <= nx; x++ {
		u := float32(x) / float32(nx)
		for z := 0; z <= nz; z++ {
			v := float32(z) / float32(nz)
			interleavedData = append(interleavedData,
				(u-0.5)*xlen, 0, (v-0.5)*zlen,
				u, v,
				0, 1, 0,
			)
		}
	}

	for x := 0; x < nx; x++ {
		for z := 0; z < nz; z++ {
			topLeft := int32(x*(nz+1) + z)
			topRight := topLeft + 1
			bottomLeft := int32((x+1)*(nz+1) + z)
			bottomRight := bottomLeft + 1

			indices = append(indices, topLeft, topRight, bottomRight, topLeft, bottomRight, bottomLeft)
		}
	}

	return newMesh("Plane", interleavedData, indices)
}
