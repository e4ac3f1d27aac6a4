package storage

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// AzureAccount identifies an Azure Storage account. A connection string (account
// key) takes precedence; otherwise AccountName is combined with DefaultAzureCredential.
type AzureAccount struct {
	ConnectionString string
	AccountName      string
}

func (a AzureAccount) useConnectionString() bool {
	return a.ConnectionString != ""
}

// serviceURL returns the endpoint of one of the account's services ("blob", "queue", "table")
func (a AzureAccount) serviceURL(service string) (string, error) {
	if a.AccountName == "" {
		return "", fmt.Errorf("azure storage account name is required when no connection string is set")
	}
	return fmt.Sprintf("https://%s.%s.core.windows.net/", a.AccountName, service), nil
}

func (a AzureAccount) credential() (azcore.TokenCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	return cred, nil
}

// hasErrorCode reports whether err is an Azure response error with one of the codes
func hasErrorCode(err error, codes ...string) bool {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}
	for _, code := range codes {
		if respErr.ErrorCode == code {
			return true
		}
	}
	return false
}

// isNotFound reports whether err is an Azure 404 response
func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
