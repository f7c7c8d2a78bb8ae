package game

// WinScore outranks every heuristic score; terminal states evaluate to ±WinScore.
const WinScore = 1e6

// TerminalScore returns the score of a finished game from perspective's point
// of view. ok is false while the game is still running.
func TerminalScore(status Status, perspective Player) (score float64, ok bool) {
	switch status {
	case Running:
		return 0, false
	case Draw:
		return 0, true
	case WinFor(perspective):
		return WinScore, true
	default:
		return -WinScore, true
	}
}
