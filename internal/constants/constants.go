package constants

// Emoji identities the bot dispatches on. Thumbs-up marks users who want to
// be mentioned in reminder notices, trash requests deletion, stop closes a
// poll.
const (
	EmojiThumbsUp = "\U0001F44D"
	EmojiTrash    = "\U0001F5D1️"
	EmojiStop     = "\U0001F6D1"
)

// Embed titles double as message type markers for reaction routing.
const (
	TitleAppointment = "Neuer Termin hinzugefügt!"
	TitlePoll        = "Umfrage"
	TitlePollResult  = "Umfrage Ergebnis"
)

const EmbedColor = 19607

// User-facing replies.
const (
	MsgInvalidDateTime  = "Fehler! Ungültiges Datums und/oder Zeit Format!"
	MsgInvalidReminder  = "Fehler! Benachrichtigung in ungültigem Format!"
	MsgInvalidRecurring = "Fehler! Wiederholung in ungültigem Format!"
	MsgNoAppointments   = "Für diesen Channel existieren derzeit keine Termine"
	MsgTooManyOptions   = "Fehler beim Erstellen der Umfrage! Es werden derzeit nicht mehr als 10 Optionen unterstützt!"

	MsgHelp = "Verfügbare Befehle:\n" +
		"`!add-appointment <Datum> <Zeit> <Benachrichtigung> <Titel> [Wiederholung]` — Termin anlegen\n" +
		"`!appointments` — Termine dieses Channels auflisten\n" +
		"`!poll \"<Frage>\" \"<Antwort>\" ...` — Umfrage erstellen (max. 10 Antworten)"
)

// PollOptions holds the numbered keycap emojis used as poll vote reactions,
// one per answer. The tenth entry has always been @⃣; changing it
// would break reconstruction of already posted polls.
var PollOptions = []string{
	"1⃣", "2⃣", "3⃣", "4⃣", "5⃣",
	"6⃣", "7⃣", "8⃣", "9⃣", "@⃣",
}
