// file:artkv/servs/s_art/art_nats/api.go
package art_nats

// Subjects are appended to the configured prefix, e.g. "art.get".
const (
	SubjectGet = "get"
	SubjectPut = "put"
	SubjectDel = "del"
	SubjectLen = "len"

	queueGroup = "art"
)

// Request is the payload of every subject; unused fields are left empty.
type Request struct {
	Key   []byte `json:"key,omitempty"`
	Value []byte `json:"value,omitempty"`
}

// Response carries the result, or Error when the call failed.
type Response struct {
	Found    bool   `json:"found,omitempty"`
	Value    []byte `json:"value,omitempty"`
	Replaced bool   `json:"replaced,omitempty"`
	Len      int    `json:"len,omitempty"`
	Error    string `json:"error,omitempty"`
}
