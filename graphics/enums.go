package graphics

// Enum is a GL enumerant as understood by both WebGL and OpenGL ES 2.0.
type Enum uint32

const (
	NO_ERROR                      Enum = 0x0
	INVALID_ENUM                  Enum = 0x0500
	INVALID_VALUE                 Enum = 0x0501
	INVALID_OPERATION             Enum = 0x0502
	OUT_OF_MEMORY                 Enum = 0x0505
	INVALID_FRAMEBUFFER_OPERATION Enum = 0x0506

	DEPTH_BUFFER_BIT   Enum = 0x00000100
	STENCIL_BUFFER_BIT Enum = 0x00000400
	COLOR_BUFFER_BIT   Enum = 0x00004000

	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	LINE_LOOP      Enum = 0x0002
	LINE_STRIP     Enum = 0x0003
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005
	TRIANGLE_FAN   Enum = 0x0006

	BYTE           Enum = 0x1400
	UNSIGNED_BYTE  Enum = 0x1401
	SHORT          Enum = 0x1402
	UNSIGNED_SHORT Enum = 0x1403
	INT            Enum = 0x1404
	UNSIGNED_INT   Enum = 0x1405
	FLOAT          Enum = 0x1406

	UNSIGNED_SHORT_4_4_4_4 Enum = 0x8033
	UNSIGNED_SHORT_5_5_5_1 Enum = 0x8034
	UNSIGNED_SHORT_5_6_5   Enum = 0x8363

	ALPHA           Enum = 0x1906
	RGB             Enum = 0x1907
	RGBA            Enum = 0x1908
	LUMINANCE       Enum = 0x1909
	LUMINANCE_ALPHA Enum = 0x190A

	VENDOR     Enum = 0x1F00
	RENDERER   Enum = 0x1F01
	VERSION    Enum = 0x1F02
	EXTENSIONS Enum = 0x1F03

	UNPACK_ALIGNMENT  Enum = 0x0CF5
	PACK_ALIGNMENT    Enum = 0x0D05
	MAX_TEXTURE_SIZE  Enum = 0x0D33
	MAX_VIEWPORT_DIMS Enum = 0x0D3A

	SCISSOR_TEST Enum = 0x0C11

	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STREAM_DRAW          Enum = 0x88E0
	STATIC_DRAW          Enum = 0x88E4
	DYNAMIC_DRAW         Enum = 0x88E8

	FRAGMENT_SHADER                  Enum = 0x8B30
	VERTEX_SHADER                    Enum = 0x8B31
	MAX_VERTEX_ATTRIBS               Enum = 0x8869
	MAX_COMBINED_TEXTURE_IMAGE_UNITS Enum = 0x8B4D
	MAX_CUBE_MAP_TEXTURE_SIZE        Enum = 0x851C
	MAX_RENDERBUFFER_SIZE            Enum = 0x84E8
	DELETE_STATUS                    Enum = 0x8B80
	COMPILE_STATUS                   Enum = 0x8B81
	LINK_STATUS                      Enum = 0x8B82
	INFO_LOG_LENGTH                  Enum = 0x8B84
	SHADER_TYPE                      Enum = 0x8B4F

	TEXTURE_2D                  Enum = 0x0DE1
	TEXTURE_CUBE_MAP            Enum = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X Enum = 0x8515
	TEXTURE_CUBE_MAP_NEGATIVE_X Enum = 0x8516
	TEXTURE_CUBE_MAP_POSITIVE_Y Enum = 0x8517
	TEXTURE_CUBE_MAP_NEGATIVE_Y Enum = 0x8518
	TEXTURE_CUBE_MAP_POSITIVE_Z Enum = 0x8519
	TEXTURE_CUBE_MAP_NEGATIVE_Z Enum = 0x851A
	TEXTURE_MIN_FILTER          Enum = 0x2801
	TEXTURE_MAG_FILTER          Enum = 0x2800
	TEXTURE_WRAP_S              Enum = 0x2802
	TEXTURE_WRAP_T              Enum = 0x2803
	NEAREST                     Enum = 0x2600
	LINEAR                      Enum = 0x2601
	CLAMP_TO_EDGE               Enum = 0x812F
	TEXTURE0                    Enum = 0x84C0

	FRAMEBUFFER                       Enum = 0x8D40
	RENDERBUFFER                      Enum = 0x8D41
	COLOR_ATTACHMENT0                 Enum = 0x8CE0
	DEPTH_ATTACHMENT                  Enum = 0x8D00
	STENCIL_ATTACHMENT                Enum = 0x8D20
	DEPTH_STENCIL_ATTACHMENT          Enum = 0x821A
	FRAMEBUFFER_COMPLETE              Enum = 0x8CD5
	FRAMEBUFFER_UNSUPPORTED           Enum = 0x8CDD
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT Enum = 0x8CD6
	RGBA4                             Enum = 0x8056
	RGB5_A1                           Enum = 0x8057
	RGB565                            Enum = 0x8D62
	DEPTH_COMPONENT16                 Enum = 0x81A5
	STENCIL_INDEX8                    Enum = 0x8D48
	DEPTH_STENCIL                     Enum = 0x84F9
	DEPTH24_STENCIL8                  Enum = 0x88F0

	// OES_depth24 / OES_depth32 / OES_packed_depth_stencil
	DEPTH_COMPONENT24_OES Enum = 0x81A6
	DEPTH_COMPONENT32_OES Enum = 0x81A7

	// OES_vertex_array_object
	VERTEX_ARRAY_BINDING_OES Enum = 0x85B5

	// WEBGL_draw_buffers
	MAX_COLOR_ATTACHMENTS_WEBGL Enum = 0x8CDF
	MAX_DRAW_BUFFERS_WEBGL      Enum = 0x8824
	NONE                        Enum = 0
	BACK                        Enum = 0x0405

	// WebGL-only enums, never forwarded to the driver.
	STENCIL_INDEX                      Enum = 0x1901
	UNPACK_FLIP_Y_WEBGL                Enum = 0x9240
	UNPACK_PREMULTIPLY_ALPHA_WEBGL     Enum = 0x9241
	CONTEXT_LOST_WEBGL                 Enum = 0x9242
	UNPACK_COLORSPACE_CONVERSION_WEBGL Enum = 0x9243
	BROWSER_DEFAULT_WEBGL              Enum = 0x9244
)
