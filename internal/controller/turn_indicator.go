package controller

const (
	whiteTurnText  = "Current Turn: White"
	blackTurnText  = "Current Turn: Black"
	whiteTurnClass = "white-turn"
	blackTurnClass = "black-turn"
)

// UpdateTurnIndicator - sets the indicator text and class for the side to move.
func (that *Controller) UpdateTurnIndicator(isWhiteTurn bool) {
	if isWhiteTurn {
		that.view.TurnIndicator.SetText(whiteTurnText)
		that.view.TurnIndicator.SetClass(whiteTurnClass)
		return
	}

	that.view.TurnIndicator.SetText(blackTurnText)
	that.view.TurnIndicator.SetClass(blackTurnClass)
}
