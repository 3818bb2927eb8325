package credentials

// JwtSettings holds the global token signing defaults. Tenants with a
// JWTAuthority override take precedence over these at both issuance and
// validation time.
type JwtSettings struct {
	Secret      string `env:"JWT_SECRET,required"`
	Issuer      string `env:"JWT_ISSUER" envDefault:"tenantkit"`
	Audience    string `env:"JWT_AUDIENCE" envDefault:"tenantkit"`
	ExpiryHours int    `env:"JWT_EXPIRY_HOURS" envDefault:"1"`
}
