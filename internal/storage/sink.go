package storage

// ScoreSink records finished games for one game ID and player.
// It satisfies the rule controller's high-score collaborator.
type ScoreSink struct {
	store  *Store
	gameID string
	player string
}

// Sink returns a sink writing to gameID on behalf of player.
func (s *Store) Sink(gameID, player string) *ScoreSink {
	return &ScoreSink{store: s, gameID: gameID, player: player}
}

// AddScore saves a final score. Zero scores are not worth a row.
func (k *ScoreSink) AddScore(score int) error {
	if score == 0 {
		return nil
	}
	_, err := k.store.SaveScore(k.gameID, k.player, score)
	return err
}
