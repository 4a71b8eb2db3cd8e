package memory

// Rules are the static difficulty parameters of a session.
type Rules struct {
	InitialWidth  int
	InitialHeight int
	MaxSize       int // cap for both grid dimensions
	GrowEvery     int // grid grows when leaving a level divisible by this; 0 disables growth
	GrowBy        int
	MaxLives      int
	// RoundsPerLevel is the number of completed rounds that finish a level.
	// Zero disables automatic advance; NextLevel is then the only trigger.
	RoundsPerLevel     int
	RefillLivesOnRetry bool
}

// DefaultRules returns the standard rule set: a 4x4 grid growing by one every
// third level up to 6x6, three lives refilled on every retry, five rounds a level.
func DefaultRules() Rules {
	return Rules{
		InitialWidth:       4,
		InitialHeight:      4,
		MaxSize:            6,
		GrowEvery:          3,
		GrowBy:             1,
		MaxLives:           3,
		RoundsPerLevel:     5,
		RefillLivesOnRetry: true,
	}
}

// GridForLevel returns the grid dimensions in effect at level, starting from
// the initial size at level 1.
func (r Rules) GridForLevel(level int) (w, h int) {
	w, h = r.InitialWidth, r.InitialHeight
	for l := 1; l < level; l++ {
		w, h = r.grow(l, w, h)
	}
	return w, h
}

// grow applies the growth rule when leaving level.
func (r Rules) grow(level, w, h int) (int, int) {
	if r.GrowEvery <= 0 || level%r.GrowEvery != 0 {
		return w, h
	}
	return growDim(w, r.GrowBy, r.MaxSize), growDim(h, r.GrowBy, r.MaxSize)
}

// growDim never shrinks a dimension that already exceeds the cap.
func growDim(d, by, limit int) int {
	if d >= limit {
		return d
	}
	return min(d+by, limit)
}
