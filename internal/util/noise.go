package util

import "math"

// NoiseSource генерирует детерминированный value-шум для фиксированного сида.
// Все методы — чистые функции: одинаковые входы всегда дают одинаковый
// результат, внутреннего состояния нет, поэтому NoiseSource безопасно
// использовать из нескольких горутин.
type NoiseSource struct {
	seed int64
}

// NewNoiseSource создаёт источник шума с указанным сидом
func NewNoiseSource(seed int64) *NoiseSource {
	return &NoiseSource{seed: seed}
}

// Seed возвращает сид источника
func (ns *NoiseSource) Seed() int64 {
	return ns.seed
}

// Hash01 сворачивает целочисленные координаты решётки и сид в
// псевдослучайное значение [0, 1). Арифметика uint32 с переполнением
// эквивалентна маске & 0xFFFFFFFF оригинальной формулы, поэтому
// значения совпадают между реализациями бит-в-бит.
func (ns *NoiseSource) Hash01(ix, iy int) float64 {
	n := uint32(ix)*374761393 + uint32(iy)*668265263 + uint32(ns.seed)*982451653
	n = (n ^ (n >> 13)) * 1274126177
	return float64(n&0xFFFFFF) / float64(1<<24)
}

// fade — квинтика сглаживания 6t^5-15t^4+10t^3 без разрывов градиента на узлах
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// lerp — линейная интерполяция
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ValueNoise возвращает билинейно интерполированный шум для точки (x, y)
// на решётке с частотой freq
func (ns *NoiseSource) ValueNoise(x, y, freq float64) float64 {
	fx := x * freq
	fy := y * freq
	ix := int(math.Floor(fx))
	iy := int(math.Floor(fy))
	tx := fx - math.Floor(fx)
	ty := fy - math.Floor(fy)
	u := fade(tx)
	v := fade(ty)
	n00 := ns.Hash01(ix, iy)
	n10 := ns.Hash01(ix+1, iy)
	n01 := ns.Hash01(ix, iy+1)
	n11 := ns.Hash01(ix+1, iy+1)
	nx0 := lerp(n00, n10, u)
	nx1 := lerp(n01, n11, u)
	return lerp(nx0, nx1, v)
}

// FBM суммирует octaves слоёв value-шума: каждый слой центрируется в [-1, 1],
// взвешивается persistence^k и сэмплируется на частоте baseFreq*lacunarity^k.
// Результат нормализуется суммой амплитуд, переводится обратно в [0, 1]
// и явно ограничивается — на границы интерполяции полагаться нельзя.
func (ns *NoiseSource) FBM(x, y, baseFreq float64, octaves int, persistence, lacunarity float64) float64 {
	value := 0.0
	amplitude := 1.0
	frequency := baseFreq
	maxAmpl := 0.0
	for i := 0; i < octaves; i++ {
		value += (ns.ValueNoise(x, y, frequency)*2 - 1) * amplitude
		maxAmpl += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return Clamp01((value/maxAmpl + 1) / 2)
}

// RidgedFBM возвращает (1 - FBM)^2 — резкие гребни для русел рек
// (persistence 0.5, lacunarity 2.0, как в базовом FBM)
func (ns *NoiseSource) RidgedFBM(x, y, baseFreq float64, octaves int) float64 {
	v := ns.FBM(x, y, baseFreq, octaves, 0.5, 2.0)
	r := 1.0 - v
	return r * r
}

// Clamp01 ограничивает значение диапазоном [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
