package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHTTPAggregateAPI_FormList(t *testing.T) {
	Convey("FetchFormList parses entries and drops incomplete ones", t, func() {
		// 准备：模拟 server
		mux := http.NewServeMux()
		mux.HandleFunc("/formList", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<xforms xmlns="http://openrosa.org/xforms/xformsList">
  <xform>
    <formID>basic-form</formID>
    <name>basic</name>
    <version>2014083101</version>
    <manifestUrl>https://remote/xformsManifest?formId=basic-form</manifestUrl>
  </xform>
  <xform>
    <formID></formID>
    <name>orphan</name>
  </xform>
</xforms>`)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		api, err := NewHTTPAggregateAPI(ts.URL, nil, 4)
		So(err, ShouldBeNil)

		forms, err := api.FetchFormList(context.Background())
		So(err, ShouldBeNil)
		So(forms, ShouldHaveLength, 1)
		So(forms[0].FormID, ShouldEqual, "basic-form")
		So(forms[0].Name, ShouldEqual, "basic")
		So(forms[0].Version, ShouldEqual, "2014083101")
		So(forms[0].ManifestURL, ShouldEqual, "https://remote/xformsManifest?formId=basic-form")
	})
}

func TestHTTPAggregateAPI_FormXMLAndManifest(t *testing.T) {
	Convey("FetchFormXML returns the body verbatim and carries credentials", t, func(c C) {
		var gotUser, gotPass string
		mux := http.NewServeMux()
		mux.HandleFunc("/formXml", func(w http.ResponseWriter, r *http.Request) {
			gotUser, gotPass, _ = r.BasicAuth()
			c.So(r.URL.Query().Get("formId"), ShouldEqual, "basic-form")
			fmt.Fprint(w, "<h:html/>")
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		api, err := NewHTTPAggregateAPI(ts.URL, &Credentials{Username: "sync", Password: "s3cret"}, 4)
		So(err, ShouldBeNil)

		xml, err := api.FetchFormXML(context.Background(), "basic-form")
		So(err, ShouldBeNil)
		So(xml, ShouldEqual, "<h:html/>")
		So(gotUser, ShouldEqual, "sync")
		So(gotPass, ShouldEqual, "s3cret")
	})

	Convey("FetchManifest drops entries missing filename, hash or downloadUrl", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/xformsManifest", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<manifest xmlns="http://openrosa.org/xforms/xformsManifest">
  <mediaFile>
    <filename>map.png</filename>
    <hash>md5:7d793037a0760186574b0282f2f435e7</hash>
    <downloadUrl>https://remote/binaryData?blobKey=1</downloadUrl>
  </mediaFile>
  <mediaFile>
    <filename>broken.csv</filename>
  </mediaFile>
</manifest>`)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		api, err := NewHTTPAggregateAPI(ts.URL, nil, 4)
		So(err, ShouldBeNil)

		media, err := api.FetchManifest(context.Background(), ts.URL+"/xformsManifest")
		So(err, ShouldBeNil)
		So(media, ShouldHaveLength, 1)
		So(media[0].Filename, ShouldEqual, "map.png")
		So(media[0].Hash, ShouldEqual, "md5:7d793037a0760186574b0282f2f435e7")
	})
}

func TestHTTPAggregateAPI_Submissions(t *testing.T) {
	Convey("FetchInstanceIDPage returns ids and the cursor fragment verbatim", t, func(c C) {
		mux := http.NewServeMux()
		mux.HandleFunc("/view/submissionList", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			c.So(q.Get("formId"), ShouldEqual, "basic-form")
			c.So(q.Get("numEntries"), ShouldEqual, "100")
			c.So(q.Get("includeIncomplete"), ShouldEqual, "false")
			// 游标片段是 XML 文本，需要实体转义
			fmt.Fprint(w, `<idChunk xmlns="http://opendatakit.org/submissions">
  <idList>
    <id>uuid:a</id>
    <id>uuid:b</id>
  </idList>
  <resumptionCursor>&lt;cursor&gt;&lt;attributeValue&gt;2019-03-15T10:00:00.000Z&lt;/attributeValue&gt;&lt;/cursor&gt;</resumptionCursor>
</idChunk>`)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		api, err := NewHTTPAggregateAPI(ts.URL, nil, 4)
		So(err, ShouldBeNil)

		page, err := api.FetchInstanceIDPage(context.Background(), "basic-form", "", 100, false)
		So(err, ShouldBeNil)
		So(page.InstanceIDs, ShouldResemble, []string{"uuid:a", "uuid:b"})
		So(page.ResumptionCursor, ShouldEqual, "<cursor><attributeValue>2019-03-15T10:00:00.000Z</attributeValue></cursor>")
	})

	Convey("FetchSubmission keeps the inner submission XML and lists attachments", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/view/downloadSubmission", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<submission xmlns="http://opendatakit.org/submissions">
  <data>
    <data id="basic-form" instanceID="uuid:a" version="2014083101"><name>Ada</name></data>
  </data>
  <mediaFile>
    <filename>photo.jpg</filename>
    <hash>md5:5d41402abc4b2a76b9719d911017c592</hash>
    <downloadUrl>https://remote/binaryData?blobKey=2</downloadUrl>
  </mediaFile>
</submission>`)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		api, err := NewHTTPAggregateAPI(ts.URL, nil, 4)
		So(err, ShouldBeNil)

		sub, err := api.FetchSubmission(context.Background(), "basic-form[@version=2014083101 and @uiVersion=null]/data[@key=uuid:a]")
		So(err, ShouldBeNil)
		So(sub.InstanceID, ShouldEqual, "uuid:a")
		So(sub.XML, ShouldContainSubstring, `instanceID="uuid:a"`)
		So(sub.XML, ShouldContainSubstring, "<name>Ada</name>")
		So(sub.Attachments, ShouldHaveLength, 1)
		So(sub.Attachments[0].Filename, ShouldEqual, "photo.jpg")
	})
}

func TestHTTPAggregateAPI_DownloadTo(t *testing.T) {
	Convey("DownloadTo streams the body into the target, creating parent dirs", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/binaryData", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "binary-bytes")
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		api, err := NewHTTPAggregateAPI(ts.URL, nil, 4)
		So(err, ShouldBeNil)

		target := filepath.Join(t.TempDir(), "media", "photo.jpg")
		So(api.DownloadTo(context.Background(), ts.URL+"/binaryData?blobKey=2", target), ShouldBeNil)

		data, err := os.ReadFile(target)
		So(err, ShouldBeNil)
		So(string(data), ShouldEqual, "binary-bytes")
	})
}
