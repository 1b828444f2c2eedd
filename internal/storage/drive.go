package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Storage is the file-storage collaborator. The production implementation is
// a Google Apps Script webhook fronting a Drive folder tree.
type Storage interface {
	Upload(ctx context.Context, folder, filename, mimeType string, data []byte) (string, error)
	Delete(ctx context.Context, fileID string) error
	Rename(ctx context.Context, fileID, newName string) error
	EnsureFolder(ctx context.Context, path string) (string, error)
}

type DriveWebhook struct {
	url        string
	token      string
	rootFolder string
	httpClient *http.Client
}

func NewDriveWebhook(url, token, rootFolder string) *DriveWebhook {
	return &DriveWebhook{
		url:        url,
		token:      token,
		rootFolder: rootFolder,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

type webhookRequest struct {
	Action   string `json:"action"`
	Token    string `json:"token"`
	Folder   string `json:"folder,omitempty"`
	Filename string `json:"filename,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	Content  string `json:"content,omitempty"` // base64
	FileID   string `json:"file_id,omitempty"`
	NewName  string `json:"new_name,omitempty"`
	Path     string `json:"path,omitempty"`
}

type webhookResponse struct {
	Success  bool   `json:"success"`
	FileID   string `json:"file_id,omitempty"`
	FolderID string `json:"folder_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (d *DriveWebhook) Upload(ctx context.Context, folder, filename, mimeType string, data []byte) (string, error) {
	resp, err := d.call(ctx, webhookRequest{
		Action:   "upload",
		Folder:   d.rootFolder + "/" + folder,
		Filename: filename,
		MimeType: mimeType,
		Content:  base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return "", err
	}
	return resp.FileID, nil
}

func (d *DriveWebhook) Delete(ctx context.Context, fileID string) error {
	_, err := d.call(ctx, webhookRequest{Action: "delete", FileID: fileID})
	return err
}

func (d *DriveWebhook) Rename(ctx context.Context, fileID, newName string) error {
	_, err := d.call(ctx, webhookRequest{Action: "rename", FileID: fileID, NewName: newName})
	return err
}

func (d *DriveWebhook) EnsureFolder(ctx context.Context, path string) (string, error) {
	resp, err := d.call(ctx, webhookRequest{Action: "ensure_folder", Path: d.rootFolder + "/" + path})
	if err != nil {
		return "", err
	}
	return resp.FolderID, nil
}

func (d *DriveWebhook) call(ctx context.Context, wr webhookRequest) (*webhookResponse, error) {
	wr.Token = d.token

	body, err := json.Marshal(wr)
	if err != nil {
		return nil, fmt.Errorf("marshal webhook request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", d.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive webhook %s: %w", wr.Action, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("drive webhook %s failed (%d)", wr.Action, resp.StatusCode)
	}

	var out webhookResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode webhook response: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("drive webhook %s failed: %s", wr.Action, out.Error)
	}

	return &out, nil
}
