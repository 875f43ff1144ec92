// Package apigw provides typed records for API Gateway proxy integration
// request and response envelopes.
//
// Header maps are case-insensitive multi-maps that remember, per key,
// whether the producer sent a single string or an array, so re-encoding
// reproduces the original shape. Query, path and stage parameter maps keep
// case-sensitive keys, matching gateway semantics.
package apigw

import (
	"time"

	"github.com/brentlemons/aws-lambda-events/codec"
	"github.com/brentlemons/aws-lambda-events/record"
)

// ProxyRequest is the inbound request envelope of a proxy integration.
type ProxyRequest struct {
	Resource                        string                              `json:"resource" msgpack:"resource"`
	Path                            string                              `json:"path" msgpack:"path"`
	HTTPMethod                      string                              `json:"httpMethod" msgpack:"httpMethod"`
	Headers                         codec.Optional[codec.Values]        `json:"headers" msgpack:"headers"`
	MultiValueHeaders               codec.Optional[codec.Values]        `json:"multiValueHeaders" msgpack:"multiValueHeaders"`
	QueryStringParameters           codec.Optional[map[string]string]   `json:"queryStringParameters" msgpack:"queryStringParameters"`
	MultiValueQueryStringParameters codec.Optional[map[string][]string] `json:"multiValueQueryStringParameters" msgpack:"multiValueQueryStringParameters"`
	PathParameters                  codec.Optional[map[string]string]   `json:"pathParameters" msgpack:"pathParameters"`
	StageVariables                  codec.Optional[map[string]string]   `json:"stageVariables" msgpack:"stageVariables"`
	RequestContext                  RequestContext                      `json:"requestContext" msgpack:"requestContext"`
	Body                            codec.Optional[string]              `json:"body" msgpack:"body"`
	IsBase64Encoded                 codec.Optional[bool]                `json:"isBase64Encoded" msgpack:"isBase64Encoded"`
}

// RequestContext carries gateway-side metadata about the request.
type RequestContext struct {
	AccountID         string                    `json:"accountId" msgpack:"accountId"`
	ResourceID        codec.Optional[string]    `json:"resourceId" msgpack:"resourceId"`
	Stage             string                    `json:"stage" msgpack:"stage"`
	RequestID         string                    `json:"requestId" msgpack:"requestId"`
	ExtendedRequestID codec.Optional[string]    `json:"extendedRequestId" msgpack:"extendedRequestId"`
	Identity          RequestIdentity           `json:"identity" msgpack:"identity"`
	ResourcePath      string                    `json:"resourcePath" msgpack:"resourcePath"`
	HTTPMethod        string                    `json:"httpMethod" msgpack:"httpMethod"`
	APIID             string                    `json:"apiId" msgpack:"apiId"`
	Protocol          codec.Optional[string]    `json:"protocol" msgpack:"protocol"`
	DomainName        codec.Optional[string]    `json:"domainName" msgpack:"domainName"`
	RequestTime       codec.Optional[string]    `json:"requestTime" msgpack:"requestTime"`
	RequestTimeEpoch  codec.Optional[time.Time] `json:"requestTimeEpoch" msgpack:"requestTimeEpoch"`
}

// RequestIdentity describes the caller. Most fields are explicitly null
// unless the gateway authorizer populated them; the nulls round-trip as
// nulls.
type RequestIdentity struct {
	CognitoIdentityPoolID         codec.Optional[string] `json:"cognitoIdentityPoolId" msgpack:"cognitoIdentityPoolId"`
	AccountID                     codec.Optional[string] `json:"accountId" msgpack:"accountId"`
	CognitoIdentityID             codec.Optional[string] `json:"cognitoIdentityId" msgpack:"cognitoIdentityId"`
	Caller                        codec.Optional[string] `json:"caller" msgpack:"caller"`
	APIKey                        codec.Optional[string] `json:"apiKey" msgpack:"apiKey"`
	AccessKey                     codec.Optional[string] `json:"accessKey" msgpack:"accessKey"`
	SourceIP                      string                 `json:"sourceIp" msgpack:"sourceIp"`
	CognitoAuthenticationType     codec.Optional[string] `json:"cognitoAuthenticationType" msgpack:"cognitoAuthenticationType"`
	CognitoAuthenticationProvider codec.Optional[string] `json:"cognitoAuthenticationProvider" msgpack:"cognitoAuthenticationProvider"`
	UserArn                       codec.Optional[string] `json:"userArn" msgpack:"userArn"`
	UserAgent                     codec.Optional[string] `json:"userAgent" msgpack:"userAgent"`
	User                          codec.Optional[string] `json:"user" msgpack:"user"`
}

// ProxyResponse is the outbound response envelope of a proxy integration.
type ProxyResponse struct {
	StatusCode        int64                        `json:"statusCode" msgpack:"statusCode"`
	Headers           codec.Optional[codec.Values] `json:"headers" msgpack:"headers"`
	MultiValueHeaders codec.Optional[codec.Values] `json:"multiValueHeaders" msgpack:"multiValueHeaders"`
	Body              codec.Optional[string]       `json:"body" msgpack:"body"`
	IsBase64Encoded   codec.Optional[bool]         `json:"isBase64Encoded" msgpack:"isBase64Encoded"`
}

var stringMap = codec.Map[string](codec.String{})
var stringListMap = codec.Map[[]string](codec.List[string](codec.String{}))

var requestIdentitySchema = record.New[RequestIdentity]("apigw.RequestIdentity",
	record.Opt("cognitoIdentityPoolId", codec.String{},
		func(r *RequestIdentity) codec.Optional[string] { return r.CognitoIdentityPoolID },
		func(r *RequestIdentity, v codec.Optional[string]) { r.CognitoIdentityPoolID = v },
	),
	record.Opt("accountId", codec.String{},
		func(r *RequestIdentity) codec.Optional[string] { return r.AccountID },
		func(r *RequestIdentity, v codec.Optional[string]) { r.AccountID = v },
	),
	record.Opt("cognitoIdentityId", codec.String{},
		func(r *RequestIdentity) codec.Optional[string] { return r.CognitoIdentityID },
		func(r *RequestIdentity, v codec.Optional[string]) { r.CognitoIdentityID = v },
	),
	record.Opt("caller", codec.String{},
		func(r *RequestIdentity) codec.Optional[string] { return r.Caller },
		func(r *RequestIdentity, v codec.Optional[string]) { r.Caller = v },
	),
	record.Opt("apiKey", codec.String{},
		func(r *RequestIdentity) codec.Optional[string] { return r.APIKey },
		func(r *RequestIdentity, v codec.Optional[string]) { r.APIKey = v },
	),
	record.Opt("accessKey", codec.String{},
		func(r *RequestIdentity) codec.Optional[string] { return r.AccessKey },
		func(r *RequestIdentity, v codec.Optional[string]) { r.AccessKey = v },
	),
	record.Required("sourceIp", codec.String{},
		func(r *RequestIdentity) string { return r.SourceIP },
		func(r *RequestIdentity, v string) { r.SourceIP = v },
	),
	record.Opt("cognitoAuthenticationType", codec.String{},
		func(r *RequestIdentity) codec.Optional[string] { return r.CognitoAuthenticationType },
		func(r *RequestIdentity, v codec.Optional[string]) { r.CognitoAuthenticationType = v },
	),
	record.Opt("cognitoAuthenticationProvider", codec.String{},
		func(r *RequestIdentity) codec.Optional[string] { return r.CognitoAuthenticationProvider },
		func(r *RequestIdentity, v codec.Optional[string]) { r.CognitoAuthenticationProvider = v },
	),
	record.Opt("userArn", codec.String{},
		func(r *RequestIdentity) codec.Optional[string] { return r.UserArn },
		func(r *RequestIdentity, v codec.Optional[string]) { r.UserArn = v },
	),
	record.Opt("userAgent", codec.String{},
		func(r *RequestIdentity) codec.Optional[string] { return r.UserAgent },
		func(r *RequestIdentity, v codec.Optional[string]) { r.UserAgent = v },
	),
	record.Opt("user", codec.String{},
		func(r *RequestIdentity) codec.Optional[string] { return r.User },
		func(r *RequestIdentity, v codec.Optional[string]) { r.User = v },
	),
)

var requestContextSchema = record.New[RequestContext]("apigw.RequestContext",
	record.Required("accountId", codec.String{},
		func(r *RequestContext) string { return r.AccountID },
		func(r *RequestContext, v string) { r.AccountID = v },
	),
	record.Opt("resourceId", codec.String{},
		func(r *RequestContext) codec.Optional[string] { return r.ResourceID },
		func(r *RequestContext, v codec.Optional[string]) { r.ResourceID = v },
	),
	record.Required("stage", codec.String{},
		func(r *RequestContext) string { return r.Stage },
		func(r *RequestContext, v string) { r.Stage = v },
	),
	record.Required("requestId", codec.String{},
		func(r *RequestContext) string { return r.RequestID },
		func(r *RequestContext, v string) { r.RequestID = v },
	),
	record.Opt("extendedRequestId", codec.String{},
		func(r *RequestContext) codec.Optional[string] { return r.ExtendedRequestID },
		func(r *RequestContext, v codec.Optional[string]) { r.ExtendedRequestID = v },
	),
	record.Required("identity", requestIdentitySchema,
		func(r *RequestContext) RequestIdentity { return r.Identity },
		func(r *RequestContext, v RequestIdentity) { r.Identity = v },
	),
	record.Required("resourcePath", codec.String{},
		func(r *RequestContext) string { return r.ResourcePath },
		func(r *RequestContext, v string) { r.ResourcePath = v },
	),
	record.Required("httpMethod", codec.String{},
		func(r *RequestContext) string { return r.HTTPMethod },
		func(r *RequestContext, v string) { r.HTTPMethod = v },
	),
	record.Required("apiId", codec.String{},
		func(r *RequestContext) string { return r.APIID },
		func(r *RequestContext, v string) { r.APIID = v },
	),
	record.Opt("protocol", codec.String{},
		func(r *RequestContext) codec.Optional[string] { return r.Protocol },
		func(r *RequestContext, v codec.Optional[string]) { r.Protocol = v },
	),
	record.Opt("domainName", codec.String{},
		func(r *RequestContext) codec.Optional[string] { return r.DomainName },
		func(r *RequestContext, v codec.Optional[string]) { r.DomainName = v },
	),
	record.Opt("requestTime", codec.String{},
		func(r *RequestContext) codec.Optional[string] { return r.RequestTime },
		func(r *RequestContext, v codec.Optional[string]) { r.RequestTime = v },
	),
	record.Opt("requestTimeEpoch", codec.Time{Form: codec.EpochMillis},
		func(r *RequestContext) codec.Optional[time.Time] { return r.RequestTimeEpoch },
		func(r *RequestContext, v codec.Optional[time.Time]) { r.RequestTimeEpoch = v },
	),
)

var proxyRequestSchema = record.New[ProxyRequest]("apigw.ProxyRequest",
	record.Required("resource", codec.String{},
		func(r *ProxyRequest) string { return r.Resource },
		func(r *ProxyRequest, v string) { r.Resource = v },
	),
	record.Required("path", codec.String{},
		func(r *ProxyRequest) string { return r.Path },
		func(r *ProxyRequest, v string) { r.Path = v },
	),
	record.Required("httpMethod", codec.String{},
		func(r *ProxyRequest) string { return r.HTTPMethod },
		func(r *ProxyRequest, v string) { r.HTTPMethod = v },
	),
	record.Opt("headers", codec.MultiMap{},
		func(r *ProxyRequest) codec.Optional[codec.Values] { return r.Headers },
		func(r *ProxyRequest, v codec.Optional[codec.Values]) { r.Headers = v },
	),
	record.Opt("multiValueHeaders", codec.MultiMap{},
		func(r *ProxyRequest) codec.Optional[codec.Values] { return r.MultiValueHeaders },
		func(r *ProxyRequest, v codec.Optional[codec.Values]) { r.MultiValueHeaders = v },
	),
	record.Opt("queryStringParameters", stringMap,
		func(r *ProxyRequest) codec.Optional[map[string]string] { return r.QueryStringParameters },
		func(r *ProxyRequest, v codec.Optional[map[string]string]) { r.QueryStringParameters = v },
	),
	record.Opt("multiValueQueryStringParameters", stringListMap,
		func(r *ProxyRequest) codec.Optional[map[string][]string] { return r.MultiValueQueryStringParameters },
		func(r *ProxyRequest, v codec.Optional[map[string][]string]) { r.MultiValueQueryStringParameters = v },
	),
	record.Opt("pathParameters", stringMap,
		func(r *ProxyRequest) codec.Optional[map[string]string] { return r.PathParameters },
		func(r *ProxyRequest, v codec.Optional[map[string]string]) { r.PathParameters = v },
	),
	record.Opt("stageVariables", stringMap,
		func(r *ProxyRequest) codec.Optional[map[string]string] { return r.StageVariables },
		func(r *ProxyRequest, v codec.Optional[map[string]string]) { r.StageVariables = v },
	),
	record.Required("requestContext", requestContextSchema,
		func(r *ProxyRequest) RequestContext { return r.RequestContext },
		func(r *ProxyRequest, v RequestContext) { r.RequestContext = v },
	),
	record.Opt("body", codec.String{},
		func(r *ProxyRequest) codec.Optional[string] { return r.Body },
		func(r *ProxyRequest, v codec.Optional[string]) { r.Body = v },
	),
	record.OptDefault("isBase64Encoded", codec.Bool{}, false,
		func(r *ProxyRequest) codec.Optional[bool] { return r.IsBase64Encoded },
		func(r *ProxyRequest, v codec.Optional[bool]) { r.IsBase64Encoded = v },
	),
)

var proxyResponseSchema = record.New[ProxyResponse]("apigw.ProxyResponse",
	record.Required("statusCode", codec.Int64{},
		func(r *ProxyResponse) int64 { return r.StatusCode },
		func(r *ProxyResponse, v int64) { r.StatusCode = v },
	),
	record.Opt("headers", codec.MultiMap{},
		func(r *ProxyResponse) codec.Optional[codec.Values] { return r.Headers },
		func(r *ProxyResponse, v codec.Optional[codec.Values]) { r.Headers = v },
	),
	record.Opt("multiValueHeaders", codec.MultiMap{},
		func(r *ProxyResponse) codec.Optional[codec.Values] { return r.MultiValueHeaders },
		func(r *ProxyResponse, v codec.Optional[codec.Values]) { r.MultiValueHeaders = v },
	),
	record.Opt("body", codec.String{},
		func(r *ProxyResponse) codec.Optional[string] { return r.Body },
		func(r *ProxyResponse, v codec.Optional[string]) { r.Body = v },
	),
	record.OptDefault("isBase64Encoded", codec.Bool{}, false,
		func(r *ProxyResponse) codec.Optional[bool] { return r.IsBase64Encoded },
		func(r *ProxyResponse, v codec.Optional[bool]) { r.IsBase64Encoded = v },
	),
)

// RequestSchema returns the proxy request schema.
func RequestSchema() *record.Schema[ProxyRequest] { return proxyRequestSchema }

// ResponseSchema returns the proxy response schema.
func ResponseSchema() *record.Schema[ProxyResponse] { return proxyResponseSchema }

// DecodeRequest parses a proxy integration request envelope.
func DecodeRequest(data []byte) (ProxyRequest, error) { return proxyRequestSchema.DecodeJSON(data) }

// EncodeRequest serializes the request back to its wire form.
func EncodeRequest(r ProxyRequest) ([]byte, error) { return proxyRequestSchema.EncodeJSON(r) }

// DecodeResponse parses a proxy integration response envelope.
func DecodeResponse(data []byte) (ProxyResponse, error) { return proxyResponseSchema.DecodeJSON(data) }

// EncodeResponse serializes the response back to its wire form.
func EncodeResponse(r ProxyResponse) ([]byte, error) { return proxyResponseSchema.EncodeJSON(r) }
