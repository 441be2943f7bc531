// Package vault reads the secrets of the gateway from the HashiCorp Vault.
//
// The vault is used only if the app is started with --secure argument.
// The gateway logs in with the AppRole, then reads the server wallet key
// from the key-value (v2) secrets engine.
package vault

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/blocklords/ballot-token/app/configuration"
	"github.com/blocklords/ballot-token/app/log"
	"github.com/blocklords/ballot-token/common/data_type/key_value"

	hashicorp "github.com/hashicorp/vault/api"
	"github.com/hashicorp/vault/api/auth/approle"
)

// PrivateKeyField is the field of the secret that keeps the server wallet key.
const PrivateKeyField = "PRIVATE_KEY"

// VaultConfigurations are setting the default configuration parameters.
//
// The values are the default values if it wasn't provided by the user
// Set the default value to nil, if the parameter is required from the user
var VaultConfigurations = configuration.DefaultConfig{
	Title: "Vault",
	Parameters: key_value.New(map[string]interface{}{
		"VAULT_HOST":               "localhost",
		"VAULT_PORT":               "8200",
		"VAULT_HTTPS":              false,
		"VAULT_APPROLE_MOUNT_PATH": "approle",
		"VAULT_PATH":               "secret",
		"VAULT_PRIVATE_KEY_NAME":   "ballot-token",
		"VAULT_APPROLE_ROLE_ID":    nil,
		"VAULT_APPROLE_SECRET_ID":  nil,
	}),
}

// Parameters to connect to the vault
type Parameters struct {
	Address          string // for example http://localhost:8200
	ApproleMountPath string
	ApproleRoleId    string
	ApproleSecretId  string
	Path             string // mount path of the key-value secrets engine
	PrivateKeyName   string // secret that keeps the server wallet key
}

// NewParameters reads the vault parameters from the configuration
func NewParameters(appConfig *configuration.Config) (Parameters, error) {
	appConfig.SetDefaults(VaultConfigurations)
	if err := appConfig.Validate(VaultConfigurations); err != nil {
		return Parameters{}, err
	}

	scheme := "http"
	if appConfig.GetBool("VAULT_HTTPS") {
		scheme = "https"
	}
	address := fmt.Sprintf("%s://%s", scheme, net.JoinHostPort(appConfig.GetString("VAULT_HOST"), appConfig.GetString("VAULT_PORT")))

	return Parameters{
		Address:          address,
		ApproleMountPath: appConfig.GetString("VAULT_APPROLE_MOUNT_PATH"),
		ApproleRoleId:    appConfig.GetString("VAULT_APPROLE_ROLE_ID"),
		ApproleSecretId:  appConfig.GetString("VAULT_APPROLE_SECRET_ID"),
		Path:             appConfig.GetString("VAULT_PATH"),
		PrivateKeyName:   appConfig.GetString("VAULT_PRIVATE_KEY_NAME"),
	}, nil
}

// Vault is the wrapper around hashicorp vault client that is logged in.
type Vault struct {
	logger     *log.Logger
	client     *hashicorp.Client
	parameters Parameters

	// the app role token. The gateway reads the secrets only on startup,
	// therefore the token is not renewed.
	authToken *hashicorp.Secret
}

// New vault that's connected to the remote HashiCorp Vault.
// Logs in with the AppRole.
func New(ctx context.Context, parameters Parameters, parent *log.Logger) (*Vault, error) {
	if len(parameters.ApproleRoleId) == 0 || len(parameters.ApproleSecretId) == 0 {
		return nil, errors.New("missing approle credentials")
	}

	config := hashicorp.DefaultConfig()
	config.Address = parameters.Address

	client, err := hashicorp.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("hashicorp.NewClient: %w", err)
	}

	v := &Vault{
		logger:     parent.Child("vault", "address", parameters.Address),
		client:     client,
		parameters: parameters,
	}

	token, err := v.login(ctx)
	if err != nil {
		return nil, fmt.Errorf("vault login error: %w", err)
	}
	v.authToken = token

	return v, nil
}

// A combination of a RoleID and a SecretID is required to log into Vault
// with AppRole authentication method.
//
// ref: https://learn.hashicorp.com/tutorials/vault/approle-best-practices?in=vault/auth-methods#secretid-delivery-best-practices
func (v *Vault) login(ctx context.Context) (*hashicorp.Secret, error) {
	v.logger.Info("Vault login: begin")

	approleSecretID := &approle.SecretID{
		FromString: v.parameters.ApproleSecretId,
	}

	appRoleAuth, err := approle.NewAppRoleAuth(
		v.parameters.ApproleRoleId,
		approleSecretID,
		approle.WithMountPath(v.parameters.ApproleMountPath),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize approle authentication method: %w", err)
	}

	authInfo, err := v.client.Auth().Login(ctx, appRoleAuth)
	if err != nil {
		return nil, fmt.Errorf("unable to login using approle auth method: %w", err)
	}
	if authInfo == nil {
		return nil, fmt.Errorf("no approle info was returned after login")
	}

	v.logger.Info("Vault login: success!")

	return authInfo, nil
}

// GetString returns the field of the secret.
func (v *Vault) GetString(ctx context.Context, secretName string, key string) (string, error) {
	secret, err := v.client.KVv2(v.parameters.Path).Get(ctx, secretName)
	if err != nil {
		return "", fmt.Errorf("vault.client.Get: %w", err)
	}

	value, ok := secret.Data[key].(string)
	if !ok {
		return "", fmt.Errorf("the '%s' of the '%s' secret is not a string, but %T", key, secretName, secret.Data[key])
	}

	return value, nil
}

// PrivateKey returns the server wallet key.
func (v *Vault) PrivateKey(ctx context.Context) (string, error) {
	return v.GetString(ctx, v.parameters.PrivateKeyName, PrivateKeyField)
}
