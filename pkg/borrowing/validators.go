package borrowing

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
)

// BookID is a book id sent as either a JSON number or a numeric string.
type BookID int

func (id *BookID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	raw = strings.Trim(raw, `"`)
	if raw == "" {
		*id = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + raw, Type: reflect.TypeOf(0)}
	}
	*id = BookID(n)
	return nil
}

type BorrowPayload struct {
	BookID     BookID `json:"bookid" validate:"required"`
	Name       string `json:"name" mod:"trim" validate:"required,max=300"`
	BorrowDate string `json:"borrowDate" mod:"trim" validate:"required,date"`
	ReturnDate string `json:"returnDate" mod:"trim" validate:"required,date"`
}

type ReturnPayload struct {
	BookID BookID `json:"bookid" validate:"required"`
}
