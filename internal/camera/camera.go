package camera

import (
	"math"

	"github.com/annel0/endless-map/internal/vec"
)

// Params задаёт константы вьюпорта
type Params struct {
	BaseTileSize float64 // Размер тайла в пикселях при зуме 1.0
	MinZoom      float64
	MaxZoom      float64
	UIOffsetY    float64 // Высота служебной полосы сверху экрана в пикселях
}

// DefaultParams возвращает параметры вьюпорта по умолчанию
func DefaultParams() Params {
	return Params{
		BaseTileSize: 32,
		MinZoom:      0.1,
		MaxZoom:      4.0,
		UIOffsetY:    50,
	}
}

// Camera отображает непрерывные мировые координаты (в тайлах) в экранные
// пиксели и обратно. Позиция камеры — мировая точка левого верхнего угла
// видимой области (под служебной полосой).
type Camera struct {
	params Params
	pos    vec.Vec2Float
	zoom   float64
}

// New создаёт камеру в начале координат с зумом 1.0
func New(params Params) *Camera {
	return &Camera{params: params, zoom: 1.0}
}

// Pos возвращает мировую позицию камеры
func (c *Camera) Pos() vec.Vec2Float {
	return c.pos
}

// SetPos устанавливает мировую позицию камеры
func (c *Camera) SetPos(pos vec.Vec2Float) {
	c.pos = pos
}

// Zoom возвращает текущий зум
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// TileSizePixels возвращает размер тайла на экране в пикселях.
// Вырожденный (неположительный) размер заменяется минимальным:
// деление на него не должно породить нечисловые координаты.
func (c *Camera) TileSizePixels() float64 {
	ts := c.params.BaseTileSize * c.zoom
	if ts <= 0 {
		ts = c.params.BaseTileSize * c.params.MinZoom
		if ts <= 0 {
			ts = 1
		}
	}
	return ts
}

// ScreenToWorld переводит пиксель экрана в мировую точку
func (c *Camera) ScreenToWorld(px, py float64) vec.Vec2Float {
	ts := c.TileSizePixels()
	return vec.Vec2Float{
		X: c.pos.X + px/ts,
		Y: c.pos.Y + (py-c.params.UIOffsetY)/ts,
	}
}

// WorldToScreen переводит мировую точку в пиксель экрана
func (c *Camera) WorldToScreen(w vec.Vec2Float) (px, py float64) {
	ts := c.TileSizePixels()
	return (w.X - c.pos.X) * ts, (w.Y-c.pos.Y)*ts + c.params.UIOffsetY
}

// ZoomAt умножает зум на multiplier с якорем в пикселе (px, py):
// мировая точка под курсором до изменения зума остаётся под ним и после.
func (c *Camera) ZoomAt(multiplier, px, py float64) {
	anchor := c.ScreenToWorld(px, py)

	c.zoom *= multiplier
	if c.zoom < c.params.MinZoom {
		c.zoom = c.params.MinZoom
	}
	if c.zoom > c.params.MaxZoom {
		c.zoom = c.params.MaxZoom
	}

	ts := c.params.BaseTileSize * c.zoom
	if ts == 0 {
		return
	}
	c.pos.X = anchor.X - px/ts
	c.pos.Y = anchor.Y - (py-c.params.UIOffsetY)/ts
}

// Pan смещает камеру на заданное число пикселей перетаскивания:
// мир тянется за курсором, камера движется в противоположную сторону.
func (c *Camera) Pan(dxPixels, dyPixels float64) {
	ts := c.TileSizePixels()
	c.pos.X -= dxPixels / ts
	c.pos.Y -= dyPixels / ts
}

// Move смещает камеру на заданное число тайлов (клавиатурная прокрутка)
func (c *Camera) Move(dxTiles, dyTiles float64) {
	c.pos.X += dxTiles
	c.pos.Y += dyTiles
}

// StepForScreenSpeed возвращает смещение камеры в тайлах за тик для
// постоянной экранной скорости прокрутки, не зависящей от зума
func (c *Camera) StepForScreenSpeed(pixelsPerSecond, ticksPerSecond float64) float64 {
	return (pixelsPerSecond / c.params.BaseTileSize) / c.zoom / ticksPerSecond
}

// VisibleTileRange возвращает левый верхний тайл видимого окна и размеры
// окна в тайлах для вьюпорта viewW x viewH пикселей. Запас в два тайла
// закрывает дробное смещение камеры: частично видимые тайлы по краям
// не должны оставлять щелей.
func (c *Camera) VisibleTileRange(viewW, viewH float64) (topLeft vec.Vec2, tilesWide, tilesHigh int) {
	ts := c.TileSizePixels()
	tilesWide = int(math.Ceil(viewW/ts)) + 2
	tilesHigh = int(math.Ceil((viewH-c.params.UIOffsetY)/ts)) + 2
	topLeft = vec.Vec2{
		X: int(math.Floor(c.pos.X)),
		Y: int(math.Floor(c.pos.Y)),
	}
	return topLeft, tilesWide, tilesHigh
}

// PixelOffset возвращает экранное смещение левого верхнего видимого тайла:
// дробная часть позиции камеры в пикселях
func (c *Camera) PixelOffset() (offsetX, offsetY float64) {
	ts := c.TileSizePixels()
	startX := math.Floor(c.pos.X)
	startY := math.Floor(c.pos.Y)
	return (startX - c.pos.X) * ts, (startY-c.pos.Y)*ts + c.params.UIOffsetY
}
