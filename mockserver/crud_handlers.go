package mockserver

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-hrms-client/apiclient"
)

const maxMultipartMemory = 10 << 20

func (s *Server) ListHandler(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writePage(w, r, c.Query(filtersFrom(r.URL.Query())))
	}
}

func (s *Server) CreateHandler(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, err := decodeItem(r)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, c.Insert(fields))
	}
}

func (s *Server) GetHandler(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		item, err := c.Get(id)
		if err != nil {
			writeDetail(w, http.StatusNotFound, "Not found.")
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (s *Server) UpdateHandler(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		fields, err := decodeItem(r)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		item, err := c.Update(id, fields)
		if err != nil {
			writeDetail(w, http.StatusNotFound, "Not found.")
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (s *Server) DeleteHandler(c *Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := c.Delete(id); err != nil {
			writeDetail(w, http.StatusNotFound, "Not found.")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// writePage answers with the {count, next, previous, results} envelope.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, items []Item) {
	query := r.URL.Query()
	size := s.pageSize
	if n, err := strconv.Atoi(query.Get("page_size")); err == nil && n > 0 {
		size = n
	}
	page := 1
	if n, err := strconv.Atoi(query.Get("page")); err == nil && n > 0 {
		page = n
	}

	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))

	out := apiclient.Page[Item]{Count: len(items), Results: items[start:end]}
	if end < len(items) {
		out.Next = pageURL(r, page+1)
	}
	if page > 1 {
		out.Previous = pageURL(r, page-1)
	}
	writeJSON(w, http.StatusOK, out)
}

func pageURL(r *http.Request, page int) *string {
	u := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path}
	query := r.URL.Query()
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()
	link := u.String()
	return &link
}

func filtersFrom(query url.Values) map[string]string {
	filters := make(map[string]string, len(query))
	for key := range query {
		switch key {
		case "page", "page_size":
			continue
		}
		filters[key] = query.Get(key)
	}
	return filters
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

// decodeItem reads a JSON object or a multipart form. File parts are stored
// by filename only.
func decodeItem(r *http.Request) (Item, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		item := Item{}
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			return nil, err
		}
		return item, nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, err
	}
	item := Item{}
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			item[key] = values[0]
		}
	}
	for key, files := range r.MultipartForm.File {
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Filename)
		}
		item[key] = names
	}
	return item, nil
}
