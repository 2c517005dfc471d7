package common

// AuthorizationHeaderName is the HTTP header used to carry the access
// token on requests to protected endpoints.
const AuthorizationHeaderName = "Authorization"

// BearerSchemePrefix is the expected prefix of the Authorization header
// value, including the trailing space.
const BearerSchemePrefix = "Bearer "
