package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sway-pr/config"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"
	"sync"
)

type OutreachLogStore interface {
	Save(ctx context.Context, entry *models.OutreachLog) error
	Recent(ctx context.Context, limit int) ([]*models.OutreachLog, error)
}

// OutreachService forwards curated contact lists to the configured
// automation webhooks. Deliveries are never retried.
type OutreachService struct {
	contacts ContactStore
	logs     OutreachLogStore
	client   *http.Client
	urls     []string
	metrics  *Metrics
}

func NewOutreachService(contacts ContactStore, logs OutreachLogStore, cfg config.WebhookConfig, metrics *Metrics) *OutreachService {
	urls := make([]string, 0, len(cfg.URLs))
	for _, u := range cfg.URLs {
		u = strings.TrimSpace(u)
		if !utils.IsURL(u) {
			if u != "" {
				utils.LogWarning("ignoring invalid webhook URL %q", u)
			}
			continue
		}
		urls = append(urls, u)
	}
	return &OutreachService{
		contacts: contacts,
		logs:     logs,
		client:   &http.Client{Timeout: cfg.Timeout},
		urls:     urls,
		metrics:  metrics,
	}
}

type deliveryResult struct {
	url        string
	statusCode int
	err        error
}

func (d deliveryResult) ok() bool {
	return d.err == nil && d.statusCode >= 200 && d.statusCode < 300
}

// SendTargetedOutreach posts the contacts of the chosen outlets to every
// webhook. It succeeds when at least one webhook accepts the delivery.
func (s *OutreachService) SendTargetedOutreach(ctx context.Context, req models.OutreachRequest) (*models.OutreachResult, error) {
	table, ok := models.ParseContactTable(req.TargetTable)
	if !ok {
		return nil, models.NewError(models.KindInvalidTarget, "invalid target table %q", req.TargetTable)
	}
	outlets := make([]string, 0, len(req.OutletNames))
	for _, o := range req.OutletNames {
		if o = strings.TrimSpace(o); o != "" {
			outlets = append(outlets, o)
		}
	}
	if len(outlets) == 0 {
		return nil, models.NewError(models.KindMissingField, "outlet_names is required")
	}
	if len(s.urls) == 0 {
		return nil, models.NewError(models.KindUpstreamFailure, "no webhook URLs are configured")
	}

	records, err := s.contacts.ListByOutlets(ctx, table, outlets)
	if err != nil {
		return nil, storageFailure(err)
	}

	staff := req.StaffMembers
	if staff == nil {
		staff = []models.StaffMember{}
	}
	payload := models.OutreachPayload{
		StaffMembers: staff,
		OutletNames:  outlets,
		Contacts:     make([]map[string]string, 0, len(records)),
	}
	for _, rec := range records {
		payload.Contacts = append(payload.Contacts, outreachContact(rec))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error encoding outreach payload: %v", err)
	}

	results := s.deliver(ctx, body)

	outletsJSON, _ := json.Marshal(outlets)
	staffJSON, _ := json.Marshal(staff)
	delivered := 0
	for _, r := range results {
		if r.ok() {
			delivered++
		}
		s.metrics.ObserveDelivery(r.ok())

		entry := &models.OutreachLog{
			TargetTable:  table.String(),
			WebhookURL:   r.url,
			OutletNames:  string(outletsJSON),
			StaffMembers: string(staffJSON),
			ContactCount: len(payload.Contacts),
			StatusCode:   r.statusCode,
			Success:      r.ok(),
		}
		if r.err != nil {
			entry.ErrorMessage = r.err.Error()
		}
		if err := s.logs.Save(ctx, entry); err != nil {
			utils.LogError("could not record outreach delivery to %s: %v", r.url, err)
		}
	}

	if delivered == 0 {
		return nil, models.NewError(models.KindUpstreamFailure, "no webhook accepted the outreach request")
	}

	utils.LogInfo("outreach for %d outlets delivered to %d of %d webhooks", len(outlets), delivered, len(results))
	return &models.OutreachResult{
		Message:      fmt.Sprintf("Outreach sent to %d of %d webhooks", delivered, len(results)),
		Delivered:    delivered,
		Attempted:    len(results),
		ContactCount: len(payload.Contacts),
	}, nil
}

func (s *OutreachService) deliver(ctx context.Context, body []byte) []deliveryResult {
	results := make([]deliveryResult, len(s.urls))
	var wg sync.WaitGroup
	for i, url := range s.urls {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			results[i] = s.post(ctx, url, body)
		}(i, url)
	}
	wg.Wait()
	return results
}

func (s *OutreachService) post(ctx context.Context, url string, body []byte) deliveryResult {
	result := deliveryResult{url: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		result.err = err
		return result
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		utils.LogWarning("webhook %s failed: %v", url, err)
		result.err = err
		return result
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	result.statusCode = resp.StatusCode
	if !result.ok() {
		result.err = fmt.Errorf("webhook responded with status %d", resp.StatusCode)
		utils.LogWarning("webhook %s responded with status %d", url, resp.StatusCode)
	}
	return result
}

func (s *OutreachService) History(ctx context.Context, limit int) ([]*models.OutreachLog, error) {
	entries, err := s.logs.Recent(ctx, limit)
	if err != nil {
		return nil, storageFailure(err)
	}
	return entries, nil
}

func outreachContact(rec models.TableRecord) map[string]string {
	c := rec.Contact()
	return map[string]string{
		"id":         fmt.Sprint(c.ID),
		"table":      rec.Table().String(),
		"name":       c.Value("name"),
		"email":      c.Value("Email"),
		"outletName": c.Value("outletName"),
		"jobTitle":   c.Value("JobTitle"),
		"phone":      c.Value("phone"),
		"city":       c.Value("City"),
		"focus":      c.Value("Focus"),
	}
}
