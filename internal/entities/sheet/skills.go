package sheet

// SkillInfo is the display label and governing ability of a well-known skill
type SkillInfo struct {
	Key     string
	Label   string
	Ability Ability
}

// StandardSkills are the well-known skills in sheet order
var StandardSkills = []SkillInfo{
	{Key: "acrobatics", Label: "Acrobatics", Ability: AbilityDex},
	{Key: "animalHandling", Label: "Animal Handling", Ability: AbilityWis},
	{Key: "arcana", Label: "Arcana", Ability: AbilityInt},
	{Key: "athletics", Label: "Athletics", Ability: AbilityStr},
	{Key: "deception", Label: "Deception", Ability: AbilityCha},
	{Key: "history", Label: "History", Ability: AbilityInt},
	{Key: "insight", Label: "Insight", Ability: AbilityWis},
	{Key: "intimidation", Label: "Intimidation", Ability: AbilityCha},
	{Key: "investigation", Label: "Investigation", Ability: AbilityInt},
	{Key: "medicine", Label: "Medicine", Ability: AbilityWis},
	{Key: "nature", Label: "Nature", Ability: AbilityInt},
	{Key: "perception", Label: "Perception", Ability: AbilityWis},
	{Key: "performance", Label: "Performance", Ability: AbilityCha},
	{Key: "persuasion", Label: "Persuasion", Ability: AbilityCha},
	{Key: "religion", Label: "Religion", Ability: AbilityInt},
	{Key: "sleightOfHand", Label: "Sleight of Hand", Ability: AbilityDex},
	{Key: "stealth", Label: "Stealth", Ability: AbilityDex},
	{Key: "survival", Label: "Survival", Ability: AbilityWis},
}

var skillsByKey = func() map[string]SkillInfo {
	m := make(map[string]SkillInfo, len(StandardSkills)*2)
	for _, s := range StandardSkills {
		m[s.Key] = s
	}
	// older saves used kebab-case keys
	m["animal-handling"] = m["animalHandling"]
	m["sleight-of-hand"] = m["sleightOfHand"]
	return m
}()

// LookupSkill resolves a legacy skill key. Unknown keys map to themselves
// with strength as the ability.
func LookupSkill(key string) SkillInfo {
	if s, ok := skillsByKey[key]; ok {
		return s
	}
	return SkillInfo{Key: key, Label: key, Ability: AbilityStr}
}
