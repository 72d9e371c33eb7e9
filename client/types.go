package client

import "encoding/xml"

// 以下类型按 Aggregate Web API 的 XML 协议抽象，字段与协议文档等价。

// MediaFile 清单或提交中引用的一个附件描述。
type MediaFile struct {
	Filename    string
	Hash        string // 形如 md5:<hex>
	DownloadURL string
}

// InstanceIDPage submissionList 返回的一页提交实例ID与续传游标原文。
type InstanceIDPage struct {
	InstanceIDs      []string
	ResumptionCursor string // 服务端返回的游标 XML 片段，原样保留
}

// Submission downloadSubmission 响应的解析结果。
type Submission struct {
	InstanceID  string
	XML         string // 提交实体的内层 XML
	Attachments []MediaFile
}

// RemoteFormDef formList 中的一个远端表单定义。
type RemoteFormDef struct {
	Name        string
	FormID      string
	Version     string
	ManifestURL string
}

// ---- XML 信封（仅解码用） ----

type manifestXML struct {
	XMLName    xml.Name       `xml:"manifest"`
	MediaFiles []mediaFileXML `xml:"mediaFile"`
}

type mediaFileXML struct {
	Filename    string `xml:"filename"`
	Hash        string `xml:"hash"`
	DownloadURL string `xml:"downloadUrl"`
}

// complete 三个字段缺一不可，缺失的条目整体丢弃。
func (m mediaFileXML) complete() bool {
	return m.Filename != "" && m.Hash != "" && m.DownloadURL != ""
}

type idChunkXML struct {
	XMLName          xml.Name `xml:"idChunk"`
	IDs              []string `xml:"idList>id"`
	ResumptionCursor string   `xml:"resumptionCursor"`
}

type submissionXML struct {
	XMLName    xml.Name          `xml:"submission"`
	Data       submissionDataXML `xml:"data"`
	MediaFiles []mediaFileXML    `xml:"mediaFile"`
}

type submissionDataXML struct {
	// Raw 保留 <data> 内层的完整 XML（即提交实体本身）
	Raw   string `xml:",innerxml"`
	Inner struct {
		InstanceID string `xml:"instanceID,attr"`
	} `xml:",any"`
}

type formListXML struct {
	XMLName xml.Name   `xml:"xforms"`
	XForms  []xformXML `xml:"xform"`
}

type xformXML struct {
	Name        string `xml:"name"`
	FormID      string `xml:"formID"`
	Version     string `xml:"version"`
	ManifestURL string `xml:"manifestUrl"`
}
