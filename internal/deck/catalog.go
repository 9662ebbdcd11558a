package deck

// catalog is the fixed major-arcana deck. Cards are never created or
// destroyed at runtime.
var catalog = Deck{
	{ID: "0", Name: "The Fool", Keyword: "New beginnings, spontaneity, potential.", Image: "https://picsum.photos/seed/fool/400/600"},
	{ID: "1", Name: "The Magician", Keyword: "Resourcefulness, manifestation, skill.", Image: "https://picsum.photos/seed/magician/400/600"},
	{ID: "2", Name: "The High Priestess", Keyword: "Intuition, inner knowledge, stillness.", Image: "https://picsum.photos/seed/priestess/400/600"},
	{ID: "3", Name: "The Empress", Keyword: "Abundance, nurturing, creativity.", Image: "https://picsum.photos/seed/empress/400/600"},
	{ID: "4", Name: "The Emperor", Keyword: "Structure, stability, authority.", Image: "https://picsum.photos/seed/emperor/400/600"},
	{ID: "5", Name: "The Hierophant", Keyword: "Tradition, formal learning, consensus.", Image: "https://picsum.photos/seed/hierophant/400/600"},
	{ID: "6", Name: "The Lovers", Keyword: "Harmony, alignment, choice.", Image: "https://picsum.photos/seed/lovers/400/600"},
	{ID: "7", Name: "The Chariot", Keyword: "Willpower, focus, discipline.", Image: "https://picsum.photos/seed/chariot/400/600"},
	{ID: "8", Name: "Strength", Keyword: "Courage, patience, soft power.", Image: "https://picsum.photos/seed/strength/400/600"},
	{ID: "9", Name: "The Hermit", Keyword: "Soul-searching, introspection, solitude.", Image: "https://picsum.photos/seed/hermit/400/600"},
	{ID: "10", Name: "Wheel of Fortune", Keyword: "Cycles, turning points, patterns.", Image: "https://picsum.photos/seed/wheel/400/600"},
	{ID: "11", Name: "Justice", Keyword: "Fairness, cause and effect, truth.", Image: "https://picsum.photos/seed/justice/400/600"},
	{ID: "12", Name: "The Hanged Man", Keyword: "New perspective, surrender, pause.", Image: "https://picsum.photos/seed/hanged/400/600"},
	{ID: "13", Name: "Death", Keyword: "Transition, ending of a cycle, release.", Image: "https://picsum.photos/seed/death/400/600"},
	{ID: "14", Name: "Temperance", Keyword: "Balance, moderation, flow.", Image: "https://picsum.photos/seed/temp/400/600"},
	{ID: "15", Name: "The Devil", Keyword: "Attachments, habits, constraints.", Image: "https://picsum.photos/seed/devil/400/600"},
	{ID: "16", Name: "The Tower", Keyword: "Sudden change, breaking ground, clarity.", Image: "https://picsum.photos/seed/tower/400/600"},
	{ID: "17", Name: "The Star", Keyword: "Hope, inspiration, renewal.", Image: "https://picsum.photos/seed/star/400/600"},
	{ID: "18", Name: "The Moon", Keyword: "Uncertainty, imagination, the subconscious.", Image: "https://picsum.photos/seed/moon/400/600"},
	{ID: "19", Name: "The Sun", Keyword: "Vitality, success, clarity.", Image: "https://picsum.photos/seed/sun/400/600"},
	{ID: "20", Name: "Judgement", Keyword: "Reflection, reckoning, absolution.", Image: "https://picsum.photos/seed/judgement/400/600"},
	{ID: "21", Name: "The World", Keyword: "Completion, integration, travel.", Image: "https://picsum.photos/seed/world/400/600"},
}

// Catalog returns the fixed deck. Callers must treat it as read-only.
func Catalog() Deck {
	return catalog
}
