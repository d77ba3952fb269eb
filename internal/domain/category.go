package domain

// Category identifies one of the XP-earning activity groups tracked by the
// weekly ledger. Every XP event belongs to exactly one category.
type Category string

// Known XP categories.
const (
	// CategoryGames covers short cognitive-training games.
	CategoryGames Category = "games"

	// CategoryTasks covers reading and listening tasks.
	CategoryTasks Category = "tasks"

	// CategoryRecovery covers timed recovery sessions (detox, walk).
	CategoryRecovery Category = "recovery"
)

// Categories lists all known categories in display order.
func Categories() []Category {
	return []Category{CategoryGames, CategoryTasks, CategoryRecovery}
}

// IsValid reports whether the category is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryGames, CategoryTasks, CategoryRecovery:
		return true
	default:
		return false
	}
}

// String returns the category as a plain string.
func (c Category) String() string {
	return string(c)
}
