package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHTTPAggregateAPI_Errors(t *testing.T) {
	Convey("non-2xx responses surface as errors with the status code", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/formXml", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "form not found", http.StatusNotFound)
		})
		mux.HandleFunc("/view/submissionList", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusUnauthorized)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		api, err := NewHTTPAggregateAPI(ts.URL, nil, 4)
		So(err, ShouldBeNil)

		_, err = api.FetchFormXML(context.Background(), "missing")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "=> 404")

		_, err = api.FetchInstanceIDPage(context.Background(), "missing", "", 100, false)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "=> 401")
	})

	Convey("a failed download leaves no target file behind", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/binaryData", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		api, err := NewHTTPAggregateAPI(ts.URL, nil, 4)
		So(err, ShouldBeNil)

		target := filepath.Join(t.TempDir(), "media", "photo.jpg")
		err = api.DownloadTo(context.Background(), ts.URL+"/binaryData", target)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "=> 410")
	})

	Convey("a malformed manifest is an error, not a silent empty list", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/xformsManifest", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<manifest><mediaFile>"))
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		api, err := NewHTTPAggregateAPI(ts.URL, nil, 4)
		So(err, ShouldBeNil)

		_, err = api.FetchManifest(context.Background(), ts.URL+"/xformsManifest")
		So(err, ShouldNotBeNil)
	})

	Convey("a cancelled context aborts the request", t, func() {
		mux := http.NewServeMux()
		ts := httptest.NewServer(mux)
		defer ts.Close()

		api, err := NewHTTPAggregateAPI(ts.URL, nil, 4)
		So(err, ShouldBeNil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = api.FetchFormXML(ctx, "basic-form")
		So(err, ShouldNotBeNil)
	})
}
