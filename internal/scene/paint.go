package scene

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"racer/internal/race"
)

// Layout constants in logical pixels.
const (
	KerbStripe    = 28.0
	KerbGap       = 2.0
	DashPeriod    = 64.0
	DashLength    = 32.0
	DashWidth     = 4.0
	DashAlpha     = 0.35
	RoadOverdraw  = 200.0
	CheckerCell   = 18.0
	BannerHeight  = 18.0
	PoleInset     = 10.0
	PoleWidth     = 6.0
	PoleExtra     = 80.0
	PoleAlpha     = 0.3
	FlashAlpha    = 0.35
	CarRadius     = 10.0
	TrimAlpha     = 0.85
	ShadowOffsetY = 8.0
	ShadowAlpha   = 0.35
)

// floorMod is a mod b in [0, b) for positive b.
func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// Paint draws one frame back to front. It reads only the snapshot and never
// mutates simulation state.
func Paint(s Surface, snap race.Snapshot, th Theme) {
	w, h := s.Size()
	tau := snap.Race.CurveT
	offset := snap.Race.TrackOffset
	tr := snap.Track
	roadX := func(n float64) float64 { return tr.RoadX(w, tau, n) }

	s.FillRect(0, 0, w, h, th.Grass, 1)

	paintKerbs(s, h, offset, roadX(0), roadX(1), tr.KerbWidth, th)

	x0, x1 := roadX(0), roadX(1)
	s.FillRect(x0, -RoadOverdraw, x1-x0, h+2*RoadOverdraw, th.Road, 1)

	mid := roadX(0.5)
	for y := -floorMod(offset, DashPeriod); y < h+DashPeriod; y += DashPeriod {
		s.FillRect(mid-DashWidth/2, y, DashWidth, DashLength, th.UI, DashAlpha)
	}

	for _, r := range snap.Rivals {
		flash := 0.0
		if r.Flash > 0 {
			flash = FlashAlpha
		}
		paintCar(s, roadX(r.X), r.Y, r.Width, r.Height, r.Color(), flash, th)
	}

	car := snap.Car
	paintCar(s, roadX(car.X), car.Y*h, car.Width, car.Height, car.Color, 0, th)

	lap := tr.LapPixels()
	if lap > 0 {
		paintFinishLine(s, x0, x1, h-floorMod(offset, lap), th)
	}
}

func paintKerbs(s Surface, h, offset, left, right, kerbW float64, th Theme) {
	for y := -floorMod(offset, KerbStripe*2); y < h+KerbStripe*2; y += KerbStripe {
		c := th.KerbWhite
		if int(math.Floor((y+offset)/KerbStripe))%2 == 0 {
			c = th.KerbRed
		}
		s.FillRect(left-kerbW-KerbGap, y, kerbW, KerbStripe, c, 1)
		s.FillRect(right+KerbGap, y, kerbW, KerbStripe, c, 1)
	}
}

// paintCar draws a car centred on (cx, cy).
func paintCar(s Surface, cx, cy, w, h float64, body colorful.Color, flash float64, th Theme) {
	x, y := cx-w/2, cy-h/2

	s.FillRoundRect(x, y+ShadowOffsetY, w, h, CarRadius, colorful.Color{}, ShadowAlpha)
	s.FillRoundRect(x, y, w, h, CarRadius, body, 1)

	// cockpit, then front and rear wings
	s.FillRoundRect(cx-w*0.22, cy-h*0.06, w*0.44, h*0.26, 6, th.Trim, TrimAlpha)
	s.FillRoundRect(cx-w*0.6, cy-h*0.48, w*1.2, h*0.06, 6, th.Trim, TrimAlpha)
	s.FillRoundRect(cx-w*0.6, cy+h*0.42, w*1.2, h*0.06, 6, th.Trim, TrimAlpha)

	for _, wy := range [2]float64{-h * 0.25, h * 0.05} {
		s.FillRoundRect(cx-w*0.55, cy+wy, w*0.16, h*0.2, 4, th.Wheel, 1)
		s.FillRoundRect(cx+w*0.39, cy+wy, w*0.16, h*0.2, 4, th.Wheel, 1)
	}

	if flash > 0 {
		s.FillRoundRect(x, y, w, h, CarRadius, th.Flash, flash)
	}
}

// paintFinishLine draws the checkered banner with its bottom edge at bannerY.
func paintFinishLine(s Surface, x0, x1, bannerY float64, th Theme) {
	cols := int(math.Ceil((x1 - x0) / CheckerCell))
	rows := int(math.Ceil(BannerHeight / CheckerCell))
	top := bannerY - BannerHeight
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			c := th.CheckerB
			if (cx+cy)%2 == 0 {
				c = th.CheckerA
			}
			s.FillRect(x0+float64(cx)*CheckerCell, top+float64(cy)*CheckerCell, CheckerCell, CheckerCell, c, 1)
		}
	}
	s.FillRect(x0-PoleInset, top, PoleWidth, BannerHeight+PoleExtra, th.Pole, PoleAlpha)
}
