package client

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// AggregateAPI 定义与 Aggregate 服务端的交互接口，便于 gomock 打桩。
// 功能：封装 /formList、/formXml、清单、/view/submissionList、/view/downloadSubmission
// 以及附件下载等请求；所有方法在 ctx 取消后尽快返回。
type AggregateAPI interface {
	FetchFormList(ctx context.Context) ([]RemoteFormDef, error)
	FetchFormXML(ctx context.Context, formID string) (string, error)
	FetchManifest(ctx context.Context, manifestURL string) ([]MediaFile, error)
	FetchInstanceIDPage(ctx context.Context, formID, cursorXML string, numEntries int, includeIncomplete bool) (*InstanceIDPage, error)
	FetchSubmission(ctx context.Context, submissionKey string) (*Submission, error)
	DownloadTo(ctx context.Context, downloadURL, target string) error
}

// Credentials Basic Auth 凭证；为 nil 表示匿名访问。
type Credentials struct {
	Username string
	Password string
}

// httpAggregateAPI 实现 AggregateAPI。
type httpAggregateAPI struct {
	base *url.URL
	cred *Credentials
	hc   *http.Client
}

// NewHTTPAggregateAPI 构造 HTTP 实现。
// 参数：baseURL 服务端地址；cred 可选凭证；maxConns 连接上限（<=0 取 8），
// 与拉取引擎的并发上限保持一致。
func NewHTTPAggregateAPI(baseURL string, cred *Credentials, maxConns int) (AggregateAPI, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if maxConns <= 0 {
		maxConns = 8
	}
	tr := &http.Transport{
		MaxConnsPerHost:     maxConns,
		MaxIdleConnsPerHost: maxConns,
	}
	return &httpAggregateAPI{
		base: u,
		cred: cred,
		hc:   &http.Client{Timeout: 60 * time.Second, Transport: tr},
	}, nil
}

// FetchFormList 获取远端表单列表；缺少 name 或 formID 的条目直接丢弃。
func (h *httpAggregateAPI) FetchFormList(ctx context.Context) ([]RemoteFormDef, error) {
	var body formListXML
	if err := h.getXML(ctx, h.endpoint("/formList", nil), &body); err != nil {
		return nil, err
	}
	out := make([]RemoteFormDef, 0, len(body.XForms))
	for _, x := range body.XForms {
		if x.Name == "" || x.FormID == "" {
			continue
		}
		out = append(out, RemoteFormDef{Name: x.Name, FormID: x.FormID, Version: x.Version, ManifestURL: x.ManifestURL})
	}
	return out, nil
}

// FetchFormXML 下载空白表单定义。
func (h *httpAggregateAPI) FetchFormXML(ctx context.Context, formID string) (string, error) {
	return h.getText(ctx, h.endpoint("/formXml", url.Values{"formId": {formID}}))
}

// FetchManifest 获取并解析附件清单；filename/hash/downloadUrl 任一缺失的条目丢弃。
func (h *httpAggregateAPI) FetchManifest(ctx context.Context, manifestURL string) ([]MediaFile, error) {
	var body manifestXML
	if err := h.getXML(ctx, manifestURL, &body); err != nil {
		return nil, err
	}
	out := make([]MediaFile, 0, len(body.MediaFiles))
	for _, m := range body.MediaFiles {
		if !m.complete() {
			continue
		}
		out = append(out, MediaFile{Filename: m.Filename, Hash: m.Hash, DownloadURL: m.DownloadURL})
	}
	return out, nil
}

// FetchInstanceIDPage 获取 submissionList 的一页。
func (h *httpAggregateAPI) FetchInstanceIDPage(ctx context.Context, formID, cursorXML string, numEntries int, includeIncomplete bool) (*InstanceIDPage, error) {
	q := url.Values{
		"formId":            {formID},
		"cursor":            {cursorXML},
		"numEntries":        {strconv.Itoa(numEntries)},
		"includeIncomplete": {strconv.FormatBool(includeIncomplete)},
	}
	var body idChunkXML
	if err := h.getXML(ctx, h.endpoint("/view/submissionList", q), &body); err != nil {
		return nil, err
	}
	return &InstanceIDPage{InstanceIDs: body.IDs, ResumptionCursor: strings.TrimSpace(body.ResumptionCursor)}, nil
}

// FetchSubmission 下载并解析一次提交的信封。
func (h *httpAggregateAPI) FetchSubmission(ctx context.Context, submissionKey string) (*Submission, error) {
	u := h.endpoint("/view/downloadSubmission", url.Values{"formId": {submissionKey}})
	var body submissionXML
	if err := h.getXML(ctx, u, &body); err != nil {
		return nil, err
	}
	atts := make([]MediaFile, 0, len(body.MediaFiles))
	for _, m := range body.MediaFiles {
		if !m.complete() {
			continue
		}
		atts = append(atts, MediaFile{Filename: m.Filename, Hash: m.Hash, DownloadURL: m.DownloadURL})
	}
	return &Submission{
		InstanceID:  body.Data.Inner.InstanceID,
		XML:         strings.TrimSpace(body.Data.Raw),
		Attachments: atts,
	}, nil
}

// DownloadTo 将附件内容流式写入本地目标路径（必要时创建父目录）。
func (h *httpAggregateAPI) DownloadTo(ctx context.Context, downloadURL, target string) error {
	res, err := h.do(ctx, downloadURL)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("GET %s => %d: %s", downloadURL, res.StatusCode, string(b))
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, res.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// endpoint 基于 base 拼接路径与查询参数。
func (h *httpAggregateAPI) endpoint(path string, q url.Values) string {
	u := *h.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if q != nil {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// do 执行 GET 请求并附加凭证。
func (h *httpAggregateAPI) do(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if h.cred != nil {
		req.SetBasicAuth(h.cred.Username, h.cred.Password)
	}
	return h.hc.Do(req)
}

// getText 执行 GET 请求并返回文本响应体。
func (h *httpAggregateAPI) getText(ctx context.Context, u string) (string, error) {
	res, err := h.do(ctx, u)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	if res.StatusCode/100 != 2 {
		return "", fmt.Errorf("GET %s => %d: %s", u, res.StatusCode, string(b))
	}
	return string(b), nil
}

// getXML 执行 GET 请求并解码 XML。
func (h *httpAggregateAPI) getXML(ctx context.Context, u string, out any) error {
	res, err := h.do(ctx, u)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("GET %s => %d: %s", u, res.StatusCode, string(b))
	}
	return xml.NewDecoder(res.Body).Decode(out)
}
