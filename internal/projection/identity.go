package projection

// Identity - "кто я" в реплицированном документе.
// Определяется один раз при подключении и больше не меняется.
type Identity struct {
	sessionID string
}

func NewIdentity(sessionID string) Identity {
	return Identity{sessionID: sessionID}
}

func (i Identity) SessionID() string { return i.sessionID }

// IsSelf сообщает, принадлежит ли игрок локальному участнику.
// Пустой id никогда не считается своим.
func (i Identity) IsSelf(playerID string) bool {
	return playerID != "" && playerID == i.sessionID
}
