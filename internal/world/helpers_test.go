package world

// scriptedRand replays a fixed list of Intn results (modulo n) and never
// reorders on Shuffle. Once the script runs out it returns 0.
type scriptedRand struct {
	values []int
	pos    int
}

func (r *scriptedRand) Intn(n int) int {
	if r.pos >= len(r.values) {
		return 0
	}
	v := r.values[r.pos] % n
	r.pos++
	return v
}

func (r *scriptedRand) Shuffle(n int, swap func(i, j int)) {}

type fakeTemplates struct {
	monsters []string
	bosses   []string
}

func (f fakeTemplates) Has(id string) bool {
	for _, m := range append(f.monsters, f.bosses...) {
		if m == id {
			return true
		}
	}
	return false
}

func (f fakeTemplates) MonsterIDs() []string { return f.monsters }
func (f fakeTemplates) BossIDs() []string    { return f.bosses }

var testTemplates = fakeTemplates{
	monsters: []string{"goblin", "orc"},
	bosses:   []string{"dragon"},
}
