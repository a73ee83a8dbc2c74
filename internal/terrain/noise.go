package terrain

import "math"

// valueNoise is fractal 2D value noise over an integer lattice. Samples are
// normalized to [0,1].
type valueNoise struct {
	seed        int64
	octaves     int
	persistence float64
	lacunarity  float64
}

// at sums the octaves at (x, z).
func (n valueNoise) at(x, z float64) float64 {
	amplitude, frequency := 1.0, 1.0
	var sum, norm float64
	for i := 0; i < n.octaves; i++ {
		sum += amplitude * sample(x*frequency, z*frequency, n.seed+int64(i*131))
		norm += amplitude
		amplitude *= n.persistence
		frequency *= n.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// sample interpolates the four lattice corners around (x, z).
func sample(x, z float64, seed int64) float64 {
	fx, fz := math.Floor(x), math.Floor(z)
	ix, iz := int64(fx), int64(fz)
	tx, tz := smootherstep(x-fx), smootherstep(z-fz)

	north := mix(lattice(ix, iz, seed), lattice(ix+1, iz, seed), tx)
	south := mix(lattice(ix, iz+1, seed), lattice(ix+1, iz+1, seed), tx)
	return mix(north, south, tz)
}

// smootherstep is 6t^5 - 15t^4 + 10t^3.
func smootherstep(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func mix(a, b, t float64) float64 {
	return a + t*(b-a)
}

// lattice maps a lattice point to [0,1].
func lattice(x, z, seed int64) float64 {
	return float64(splitmix(x, z, seed)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// splitmix hashes a lattice point; stable across runs.
func splitmix(x, z, seed int64) uint64 {
	v := uint64(x) + uint64(z)<<1 + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ v>>30) * 0xBF58476D1CE4E5B9
	v = (v ^ v>>27) * 0x94D049BB133111EB
	return v ^ v>>31
}
