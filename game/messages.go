package game

import "fmt"

// Player-facing announcement texts. Players never see raw internal errors.
const (
	MessageNetworkErrorOccurred     = "Network error encountered. Please try again later."
	MessageCorrectMovingToNextRound = "Correct! You are moving to the next round!"
	MessageYouAreEliminated         = "Did not receive a correct response! You have been eliminated from the game!"
	MessageYouAreTheWinner          = "Congratulations, you are the winner!"
)

func WaitingMessage(remaining int) string {
	return fmt.Sprintf("Waiting for %d more player(s) to join...", remaining)
}

func RoundStartingMessage(round int) string {
	return fmt.Sprintf("Round %d is starting!", round)
}
