package combat

// Damage returns the damage of one attack. A hit always deals at least 1.
func Damage(attack, defense int) int {
	damage := attack - defense
	if damage < 1 {
		damage = 1
	}
	return damage
}

// ActionCount returns how many attacks the attacker makes in one round:
// floor(attacker speed / defender speed), at least 1. A defender with zero
// speed counts as speed 1.
func ActionCount(attacker, defender Combatant) int {
	spd := defender.GetSpeed()
	if spd < 1 {
		spd = 1
	}
	n := attacker.GetSpeed() / spd
	if n < 1 {
		n = 1
	}
	return n
}

var damageMessages = []struct {
	maxDamage int
	verb      string // "{attacker} {verb} {target}"
}{
	{1, "grazes"},
	{2, "barely scratches"},
	{4, "nicks"},
	{6, "hits"},
	{10, "strikes"},
	{14, "hits hard"},
	{19, "pummels"},
	{24, "mauls"},
	{30, "devastates"},
}

// DamageVerb returns the verb used in the combat log for a damage amount.
func DamageVerb(damage int) string {
	for _, msg := range damageMessages {
		if damage <= msg.maxDamage {
			return msg.verb
		}
	}
	return "obliterates"
}
