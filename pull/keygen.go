package pull

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// ErrNoFormDefinition 表示缺少空白表单定义，无法生成提交 key。
var ErrNoFormDefinition = errors.New("no form definition to build submission keys from")

// SubmissionKeyGenerator 从空白表单定义推导 downloadSubmission 所需的提交 key。
// key 形如 formId[@version=v and @uiVersion=null]/instanceName[@key=instanceId]。
type SubmissionKeyGenerator struct {
	formID       string
	version      string
	hasVersion   bool
	instanceName string
}

// NewSubmissionKeyGenerator 解析空白表单 XML：
// 取 model/instance 的第一个子元素，其元素名为实例名，id/version 属性为表单标识与版本。
// 表单定义缺失或结构不符合预期视为契约违约，返回错误。
func NewSubmissionKeyGenerator(formXML string) (*SubmissionKeyGenerator, error) {
	if strings.TrimSpace(formXML) == "" {
		return nil, ErrNoFormDefinition
	}
	dec := xml.NewDecoder(strings.NewReader(formXML))
	inInstance := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse form definition: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !inInstance {
			if se.Name.Local == "instance" {
				inInstance = true
			}
			continue
		}
		// instance 的第一个子元素即提交实体的根
		g := &SubmissionKeyGenerator{instanceName: se.Name.Local}
		for _, a := range se.Attr {
			switch a.Name.Local {
			case "id":
				g.formID = a.Value
			case "version":
				g.version = a.Value
				g.hasVersion = true
			}
		}
		if g.formID == "" {
			return nil, errors.New("form definition instance has no id attribute")
		}
		return g, nil
	}
}

// BuildKey 生成某个实例的提交 key。
func (g *SubmissionKeyGenerator) BuildKey(instanceID string) string {
	version := "null"
	if g.hasVersion {
		version = g.version
	}
	return fmt.Sprintf("%s[@version=%s and @uiVersion=null]/%s[@key=%s]", g.formID, version, g.instanceName, instanceID)
}
