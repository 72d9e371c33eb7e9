package pull

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/FrankApiyo/briefcase/client"
)

// fakeAPI 可编排的 AggregateAPI 假实现，仅用于测试，带调用计数。
type fakeAPI struct {
	mu sync.Mutex

	formXML     string
	formErr     error
	manifest    []client.MediaFile
	manifestErr error

	pages    []client.InstanceIDPage
	pageErr  error
	pageIdx  int
	subs     map[string]*client.Submission
	subErrs  map[string]error
	payloads map[string]string // downloadUrl -> 内容

	formCalls     int
	manifestCalls int
	pageCalls     int
	subCalls      int
	downloadCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		subs:     map[string]*client.Submission{},
		subErrs:  map[string]error{},
		payloads: map[string]string{},
	}
}

func (f *fakeAPI) FetchFormList(ctx context.Context) ([]client.RemoteFormDef, error) {
	return nil, nil
}

func (f *fakeAPI) FetchFormXML(ctx context.Context, formID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.formCalls++
	return f.formXML, f.formErr
}

func (f *fakeAPI) FetchManifest(ctx context.Context, manifestURL string) ([]client.MediaFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manifestCalls++
	return f.manifest, f.manifestErr
}

func (f *fakeAPI) FetchInstanceIDPage(ctx context.Context, formID, cursorXML string, numEntries int, includeIncomplete bool) (*client.InstanceIDPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls++
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	if f.pageIdx >= len(f.pages) {
		return &client.InstanceIDPage{}, nil
	}
	p := f.pages[f.pageIdx]
	f.pageIdx++
	return &p, nil
}

// keyOwner 从提交 key 中还原实例ID（key 形如 .../name[@key=<iid>]）。
func keyOwner(submissionKey string) string {
	i := len(submissionKey) - 1
	for ; i >= 0; i-- {
		if submissionKey[i] == '=' {
			break
		}
	}
	if i < 0 {
		return submissionKey
	}
	return submissionKey[i+1 : len(submissionKey)-1]
}

func (f *fakeAPI) FetchSubmission(ctx context.Context, submissionKey string) (*client.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subCalls++
	iid := keyOwner(submissionKey)
	if err, ok := f.subErrs[iid]; ok {
		return nil, err
	}
	if s, ok := f.subs[iid]; ok {
		cp := *s
		return &cp, nil
	}
	return &client.Submission{InstanceID: iid, XML: "<data/>"}, nil
}

func (f *fakeAPI) DownloadTo(ctx context.Context, downloadURL, target string) error {
	f.mu.Lock()
	f.downloadCalls++
	content := f.payloads[downloadURL]
	f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, []byte(content), 0o644)
}

func (f *fakeAPI) calls() (form, manifest, page, sub, download int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.formCalls, f.manifestCalls, f.pageCalls, f.subCalls, f.downloadCalls
}
