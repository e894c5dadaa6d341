package anki

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const protocolVersion = 6

// requestTimeout bounds every AnkiConnect call: 10 seconds is
// sufficient for a single, synchronous connection.
const requestTimeout = 10 * time.Second

// ConnectClient talks to a locally running AnkiConnect add-on over its
// JSON-RPC-over-HTTP transport: a JSON object
// {action, version, params} POSTed to a configurable URL, answered with
// {result, error}.
type ConnectClient struct {
	url  string
	http *http.Client
}

// NewConnectClient returns a client that posts requests to url (e.g.
// "http://127.0.0.1:8765").
func NewConnectClient(url string) *ConnectClient {
	return &ConnectClient{
		url:  url,
		http: &http.Client{Timeout: requestTimeout},
	}
}

type rpcRequest struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke performs one AnkiConnect call and decodes its result into out
// (which may be nil, if the caller doesn't need the result). A
// transport failure is a ConnectionError; a populated error field is a
// RemoteAPIError.
func (c *ConnectClient) invoke(action string, params, out any) error {
	body, err := json.Marshal(rpcRequest{Action: action, Version: protocolVersion, Params: params})
	if err != nil {
		return &ConnectionError{Action: action, Err: err}
	}

	req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return &ConnectionError{Action: action, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &ConnectionError{Action: action, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ConnectionError{Action: action, Err: err}
	}

	var rpc rpcResponse
	if err := json.Unmarshal(data, &rpc); err != nil {
		return &ConnectionError{Action: action, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if rpc.Error != nil {
		return &RemoteAPIError{Action: action, Message: *rpc.Error}
	}
	if out != nil && len(rpc.Result) > 0 {
		if err := json.Unmarshal(rpc.Result, out); err != nil {
			return &ConnectionError{Action: action, Err: fmt.Errorf("decoding result: %w", err)}
		}
	}
	return nil
}

func (c *ConnectClient) ModelNames() ([]string, error) {
	var names []string
	if err := c.invoke("modelNames", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

type modelTemplate struct {
	Front string `json:"Front"`
	Back  string `json:"Back"`
}

func (c *ConnectClient) CreateModel(name string, fields []string, templates []CardTemplate, css string) error {
	cardTemplates := make([]map[string]string, len(templates))
	for i, t := range templates {
		cardTemplates[i] = map[string]string{
			"Name":  t.Name,
			"Front": t.Front,
			"Back":  t.Back,
		}
	}
	params := map[string]any{
		"modelName":     name,
		"inOrderFields": fields,
		"css":           css,
		"cardTemplates": cardTemplates,
	}
	return c.invoke("createModel", params, nil)
}

func (c *ConnectClient) ModelTemplates(name string) (map[string]CardTemplate, error) {
	var raw map[string]modelTemplate
	if err := c.invoke("modelTemplates", map[string]string{"modelName": name}, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]CardTemplate, len(raw))
	for templateName, t := range raw {
		out[templateName] = CardTemplate{Name: templateName, Front: t.Front, Back: t.Back}
	}
	return out, nil
}

func (c *ConnectClient) UpdateModelStyling(name, css string) error {
	params := map[string]any{
		"model": map[string]string{"name": name, "css": css},
	}
	return c.invoke("updateModelStyling", params, nil)
}

func (c *ConnectClient) UpdateModelTemplates(name string, templates map[string]CardTemplate) error {
	rawTemplates := make(map[string]modelTemplate, len(templates))
	for templateName, t := range templates {
		rawTemplates[templateName] = modelTemplate{Front: t.Front, Back: t.Back}
	}
	params := map[string]any{
		"model": map[string]any{"name": name, "templates": rawTemplates},
	}
	return c.invoke("updateModelTemplates", params, nil)
}

func (c *ConnectClient) AddNote(deck, model string, fields map[string]string, tags []string) (int64, error) {
	params := map[string]any{
		"note": map[string]any{
			"deckName":  deck,
			"modelName": model,
			"fields":    fields,
			"tags":      tags,
		},
	}
	var id int64
	if err := c.invoke("addNote", params, &id); err != nil {
		return 0, err
	}
	return id, nil
}

func (c *ConnectClient) UpdateNoteFields(noteID int64, fields map[string]string) error {
	params := map[string]any{
		"note": map[string]any{
			"id":     noteID,
			"fields": fields,
		},
	}
	return c.invoke("updateNoteFields", params, nil)
}

func (c *ConnectClient) NotesExist(noteIDs []int64) (map[int64]bool, error) {
	var infos []json.RawMessage
	if err := c.invoke("notesInfo", map[string]any{"notes": noteIDs}, &infos); err != nil {
		return nil, err
	}
	exists := make(map[int64]bool, len(noteIDs))
	for i, id := range noteIDs {
		if i >= len(infos) {
			break
		}
		exists[id] = string(infos[i]) != "{}" && string(infos[i]) != "null"
	}
	return exists, nil
}

func (c *ConnectClient) FindNotes(query string) ([]int64, error) {
	var ids []int64
	if err := c.invoke("findNotes", map[string]string{"query": query}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *ConnectClient) AddTags(noteIDs []int64, tags string) error {
	params := map[string]any{"notes": noteIDs, "tags": tags}
	return c.invoke("addTags", params, nil)
}

func (c *ConnectClient) DeleteNotes(noteIDs []int64) error {
	return c.invoke("deleteNotes", map[string]any{"notes": noteIDs}, nil)
}
