package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// NextPeriod carries the authoritative dates of a company's next filing
// period as published by the companies register.
type NextPeriod struct {
	PeriodEnd        types.Timestamp `json:"periodEnd"`
	FilingDueTime    types.Timestamp `json:"filingDueTime"`
	SecondaryDueTime types.Timestamp `json:"secondaryDueTime"`
}

var (
	FetchNextPeriodFunc = FetchNextPeriod

	// the register API is the only unbounded-latency call of the core,
	// so it gets an explicit timeout and a client-side rate limit
	registryHTTPClient = &http.Client{Timeout: 10 * time.Second}
	registryLimiter    = rate.NewLimiter(rate.Every(200*time.Millisecond), 5)

	maxFetchAttempts = 3
	retryInterval    = 500 * time.Millisecond
)

func registryServiceURL() string {
	url := os.Getenv("REGISTRY_SERVICE_URL")
	if url == "" {
		url = "http://localhost:9040"
	}
	return url
}

type nextPeriodResource struct {
	CompanyNumber string `json:"companyNumber"`
	PeriodEnd     string `json:"periodEnd"`
	FilingDue     string `json:"filingDue"`
	SecondaryDue  string `json:"secondaryDue"`
}

// FetchNextPeriod looks up the next statutory filing period of a company.
// It returns (nil, nil) when the register has no data for the company.
func FetchNextPeriod(companyNumber string) (*NextPeriod, error) {
	if companyNumber == "" {
		return nil, errors.New("company number is empty")
	}

	var lastErr error
	for attempt := 0; attempt < maxFetchAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(retryInterval)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := registryLimiter.Wait(ctx)
		cancel()
		if err != nil {
			return nil, err
		}

		period, retriable, err := fetchNextPeriodOnce(companyNumber)
		if err == nil {
			return period, nil
		}
		lastErr = err
		if !retriable {
			break
		}
		logrus.Warnf("registry lookup for company %s failed (attempt %d): %v", companyNumber, attempt+1, err)
	}
	return nil, lastErr
}

func fetchNextPeriodOnce(companyNumber string) (period *NextPeriod, retriable bool, err error) {
	url := fmt.Sprintf("%s/v1/companies/%s/next-period", registryServiceURL(), companyNumber)
	resp, err := registryHTTPClient.Get(url)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode >= http.StatusInternalServerError,
			fmt.Errorf("registry responded %d for company %s", resp.StatusCode, companyNumber)
	}

	resource := nextPeriodResource{}
	if err := json.NewDecoder(resp.Body).Decode(&resource); err != nil {
		return nil, false, err
	}
	if resource.PeriodEnd == "" {
		return nil, false, nil
	}

	result := NextPeriod{}
	if result.PeriodEnd, err = parseRegistryDate(resource.PeriodEnd); err != nil {
		return nil, false, err
	}
	if result.FilingDueTime, err = parseRegistryDate(resource.FilingDue); err != nil {
		return nil, false, err
	}
	if resource.SecondaryDue != "" {
		if result.SecondaryDueTime, err = parseRegistryDate(resource.SecondaryDue); err != nil {
			return nil, false, err
		}
	}
	return &result, false, nil
}

func parseRegistryDate(value string) (types.Timestamp, error) {
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return types.Timestamp{}, err
	}
	return types.Timestamp(t), nil
}
