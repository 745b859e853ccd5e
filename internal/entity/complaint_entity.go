package entity

type ChatTurn struct {
	Sender  string
	Message string
}

type FileReference struct {
	Name     string
	Url      string
	MimeType string
}

type ComplaintRequest struct {
	UserId        string
	ComplaintText string
	SessionId     string
	ChatHistory   []ChatTurn
	Files         []FileReference
}
