package entity

import (
	"testing"
)

func TestAllSetting_CheckValid_ValidConfig(t *testing.T) {
	s := &AllSetting{
		WebBasePath:   "/",
		SessionMaxAge: 60,
		PageSize:      20,
		TimeLocation:  "UTC",
	}

	if err := s.CheckValid(); err != nil {
		t.Errorf("CheckValid() unexpected error: %v", err)
	}
}

func TestAllSetting_CheckValid_InvalidBasePath(t *testing.T) {
	for _, basePath := range []string{"", "panel/", "/panel"} {
		s := &AllSetting{
			WebBasePath:   basePath,
			SessionMaxAge: 60,
			PageSize:      20,
		}
		if err := s.CheckValid(); err == nil {
			t.Errorf("CheckValid() should reject basePath %q", basePath)
		}
	}
}

func TestAllSetting_CheckValid_InvalidPageSize(t *testing.T) {
	for _, size := range []int{0, -1, 101} {
		s := &AllSetting{
			WebBasePath:   "/",
			SessionMaxAge: 60,
			PageSize:      size,
		}
		if err := s.CheckValid(); err == nil {
			t.Errorf("CheckValid() should reject pageSize %d", size)
		}
	}
}

func TestCheckListenValid(t *testing.T) {
	if err := CheckListenValid(""); err != nil {
		t.Errorf("empty listen should be valid: %v", err)
	}
	if err := CheckListenValid("0.0.0.0"); err != nil {
		t.Errorf("0.0.0.0 should be valid: %v", err)
	}
	if err := CheckListenValid("::1"); err != nil {
		t.Errorf("::1 should be valid: %v", err)
	}
	if err := CheckListenValid("not-an-ip"); err == nil {
		t.Error("non-IP listen should be rejected")
	}
}
