package entity

import (
	"fmt"
	"net"

	"quipvid/database/model"
)

// Msg is the panel endpoint envelope.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// Detail is the public API error body, e.g. {"detail": "Video not found"}.
type Detail struct {
	Detail string `json:"detail"`
}

// PaginatedVideos is the list envelope of the public API.
type PaginatedVideos struct {
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int64          `json:"total_pages"`
	Videos     []*model.Video `json:"videos"`
}

// AllSetting mirrors the panel-editable settings as one form.
type AllSetting struct {
	WebBasePath   string `json:"webBasePath" form:"webBasePath"`
	SessionMaxAge int    `json:"sessionMaxAge" form:"sessionMaxAge"`
	PageSize      int    `json:"pageSize" form:"pageSize"`
	TimeLocation  string `json:"timeLocation" form:"timeLocation"`
	IngestAPIURL  string `json:"ingestApiUrl" form:"ingestApiUrl"`
}

func (s *AllSetting) CheckValid() error {
	if s.WebBasePath == "" || s.WebBasePath[0] != '/' {
		return fmt.Errorf("webBasePath must start with '/'")
	}
	if s.WebBasePath[len(s.WebBasePath)-1] != '/' {
		return fmt.Errorf("webBasePath must end with '/'")
	}
	if s.SessionMaxAge < 0 {
		return fmt.Errorf("sessionMaxAge must not be negative")
	}
	if s.PageSize < 1 || s.PageSize > 100 {
		return fmt.Errorf("pageSize must be within 1..100")
	}
	return nil
}

// CheckListenValid validates an optional listen address.
func CheckListenValid(listen string) error {
	if listen == "" {
		return nil
	}
	if net.ParseIP(listen) == nil {
		return fmt.Errorf("%s is not a valid ip address", listen)
	}
	return nil
}
