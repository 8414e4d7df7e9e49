package host

import (
	"github.com/vovakirdan/tui-escape/internal/sim"
	"github.com/vovakirdan/tui-escape/internal/storage"
)

// SaveSlot builds a save slot from a saved game and the state it was taken
// from.
func SaveSlot(name string, data []byte, snap sim.Snapshot) storage.SaveSlot {
	escaped := 0
	for n := range sim.NbNations {
		if snap.PrisonerData[n*3+1] != 0 {
			escaped++
		}
	}
	return storage.SaveSlot{
		Name:     name,
		Data:     data,
		GameTime: snap.Now,
		Nation:   snap.Current,
		Escaped:  escaped,
	}
}

// Outcomes lists how each prisoner's run ended, plus the end of the game
// itself once it is over. Prisoners still in play have no record.
func Outcomes(session string, snap sim.Snapshot) []storage.EscapeRecord {
	var out []storage.EscapeRecord
	for n := range sim.NbNations {
		rec := storage.EscapeRecord{Session: session, Nation: n, GameTime: snap.Now}
		switch {
		case snap.PrisonerData[n*3+1] != 0:
			rec.Outcome = storage.OutcomeEscaped
		case snap.PrisonerData[n*3+2] != 0:
			rec.Outcome = storage.OutcomeKilled
		default:
			continue
		}
		out = append(out, rec)
	}
	end := storage.EscapeRecord{Session: session, Nation: snap.Current, GameTime: snap.Now}
	switch {
	case snap.GameWon:
		end.Outcome = storage.OutcomeGameWon
		out = append(out, end)
	case snap.GameOver:
		end.Outcome = storage.OutcomeGameOver
		out = append(out, end)
	}
	return out
}
