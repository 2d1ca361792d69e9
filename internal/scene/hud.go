package scene

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"racer/internal/race"
)

// HUDLines is the text overlay, one field per readout.
type HUDLines struct {
	Speed       string
	Lap         string
	Time        string
	Best        string
	Status      string
	Checkpoints string
	Progress    float64 // 0..1, for a progress bar
}

// KmhPerPx converts px/s to the displayed km/h.
const KmhPerPx = 1.2

const NoBest = "--:--.---"

func HUD(snap race.Snapshot) HUDLines {
	r := snap.Race
	best := NoBest
	if r.Best != nil {
		best = race.FormatLapTime(*r.Best)
	}
	return HUDLines{
		Speed:       fmt.Sprintf("%d km/h", int(math.Round(snap.Car.Speed*KmhPerPx))),
		Lap:         fmt.Sprintf("%d / %d", r.DisplayLap(), r.TotalLaps),
		Time:        race.FormatLapTime(r.LapTime),
		Best:        best,
		Status:      r.Status,
		Checkpoints: fmt.Sprintf("CP %d/%d", snap.Track.CheckpointsPassed(r.TrackOffset), len(snap.Track.Checkpoints)),
		Progress:    snap.Progress(),
	}
}

// HUD layout in logical pixels.
const (
	HUDMargin   = 16.0
	HUDPad      = 10.0
	HUDLineGap  = 4.0
	HUDBarH     = 6.0
	HUDPanelA   = 0.45
	HUDRadius   = 8.0
	HUDBarAlpha = 0.8
)

// PaintHUD draws the readout panel in the top-left corner and the status
// message centred along the top edge.
func PaintHUD(s TextSurface, l HUDLines, th Theme) {
	rows := []string{
		"SPEED " + l.Speed,
		"LAP   " + l.Lap,
		"TIME  " + l.Time,
		"BEST  " + l.Best,
		l.Checkpoints,
	}
	lineW, lineH := 0.0, 0.0
	for _, r := range rows {
		w, h := s.TextSize(r)
		lineW = math.Max(lineW, w)
		lineH = math.Max(lineH, h)
	}
	panelW := lineW + 2*HUDPad
	panelH := float64(len(rows))*(lineH+HUDLineGap) + HUDBarH + 2*HUDPad
	s.FillRoundRect(HUDMargin, HUDMargin, panelW, panelH, HUDRadius, colorful.Color{}, HUDPanelA)

	y := HUDMargin + HUDPad
	for _, r := range rows {
		s.DrawText(HUDMargin+HUDPad, y, r, th.UI)
		y += lineH + HUDLineGap
	}
	s.FillRect(HUDMargin+HUDPad, y, lineW, HUDBarH, th.Road, 1)
	s.FillRect(HUDMargin+HUDPad, y, lineW*l.Progress, HUDBarH, th.KerbRed, HUDBarAlpha)

	if l.Status != "" {
		sw, _ := s.Size()
		tw, tHeight := s.TextSize(l.Status)
		x := (sw - tw) / 2
		s.FillRoundRect(x-HUDPad, HUDMargin, tw+2*HUDPad, tHeight+HUDPad, HUDRadius, colorful.Color{}, HUDPanelA)
		s.DrawText(x, HUDMargin+HUDPad/2, l.Status, th.UI)
	}
}
