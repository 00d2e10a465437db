package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
)

// Form is a multipart payload (file attachments, mail with attachments).
// Its fields are unexported: a Form that ends up JSON-encoded serialises to {}.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name, value string
}

type formFile struct {
	field, filename string
	content         []byte
}

func NewForm() *Form {
	return &Form{}
}

// AddField appends a text field. Repeated names are kept in order.
func (f *Form) AddField(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddFile appends a file part read fully from r.
func (f *Form) AddFile(field, filename string, r io.Reader) error {
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	f.files = append(f.files, formFile{field: field, filename: filename, content: content})
	return nil
}

func (f *Form) encode() (*Body, error) {
	if f == nil {
		return nil, nil
	}
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", fld.name, err)
		}
	}
	for _, file := range f.files {
		part, err := w.CreateFormFile(file.field, file.filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := part.Write(file.content); err != nil {
			return nil, fmt.Errorf("failed to write form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}
	// The boundary is chosen by the multipart writer, so the content type comes
	// from it rather than from the client.
	return &Body{Data: buf.Bytes(), ContentType: w.FormDataContentType()}, nil
}

// Body is an encoded request body. Data is kept as bytes so a request can be
// replayed after a token refresh.
type Body struct {
	Data        []byte
	ContentType string
}

func (b *Body) reader() io.Reader {
	if b == nil {
		return nil
	}
	return bytes.NewReader(b.Data)
}

// BodyPolicy decides, per HTTP verb, whether a *Form is sent as multipart or
// JSON-encoded like any other value.
type BodyPolicy struct {
	MultipartVerbs map[string]bool
}

var (
	// PostOnlyMultipart is the fetch-client policy: POST passes forms through,
	// PUT always JSON-encodes.
	PostOnlyMultipart = BodyPolicy{MultipartVerbs: map[string]bool{http.MethodPost: true}}

	// AnyVerbMultipart sends forms as multipart whatever the verb.
	AnyVerbMultipart = BodyPolicy{MultipartVerbs: map[string]bool{
		http.MethodPost:  true,
		http.MethodPut:   true,
		http.MethodPatch: true,
	}}
)

// Encode turns data into a request body. Nil data means no body at all, and
// that includes nil pointers, maps, slices and a nil *Form.
func (p BodyPolicy) Encode(method string, data any) (*Body, error) {
	if isNil(data) {
		return nil, nil
	}
	if form, ok := data.(*Form); ok && p.MultipartVerbs[strings.ToUpper(method)] {
		return form.encode()
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return &Body{Data: b, ContentType: "application/json"}, nil
}

func isNil(data any) bool {
	if data == nil {
		return true
	}
	switch v := reflect.ValueOf(data); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
