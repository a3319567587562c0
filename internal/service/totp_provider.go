package service

import (
	"net/url"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTPProvider implements TwoFactorProvider with standard 30-second-step,
// six-digit codes and a one-step skew tolerance.
type TOTPProvider struct {
	Issuer string
	Period uint
	Skew   uint
}

func NewTOTPProvider(issuer string) *TOTPProvider {
	return &TOTPProvider{
		Issuer: issuer,
		Period: 30,
		Skew:   1,
	}
}

// GenerateSecret returns only the base32 secret. The account name is a
// placeholder because the key's own URL is discarded; the real label is
// built later by ProvisioningURI once the user's email is known.
func (p *TOTPProvider) GenerateSecret() (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      p.issuer(),
		AccountName: "pending",
		Period:      p.period(),
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

func (p *TOTPProvider) ProvisioningURI(email string, secret string) (string, error) {
	issuer := p.issuer()
	// PathEscape leaves "@" literal; otpauth labels conventionally encode it.
	label := strings.ReplaceAll(url.PathEscape(issuer+":"+email), "@", "%40")
	query := url.Values{}
	query.Set("secret", secret)
	query.Set("issuer", issuer)
	query.Set("algorithm", "SHA1")
	query.Set("digits", "6")
	query.Set("period", "30")
	return "otpauth://totp/" + label + "?" + query.Encode(), nil
}

func (p *TOTPProvider) ValidateCode(secret string, code string) bool {
	ok, err := totp.ValidateCustom(code, secret, time.Now(), totp.ValidateOpts{
		Period:    p.period(),
		Skew:      p.skew(),
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return ok && err == nil
}

func (p *TOTPProvider) issuer() string {
	if strings.TrimSpace(p.Issuer) == "" {
		return "SaveSphere"
	}
	return p.Issuer
}

func (p *TOTPProvider) period() uint {
	if p.Period == 0 {
		return 30
	}
	return p.Period
}

func (p *TOTPProvider) skew() uint {
	if p.Skew == 0 {
		return 1
	}
	return p.Skew
}
